package entity

import "time"

// User is the local identity record for a GitHub account. A row is
// created lazily on first successful login and never deleted here.
//
// IsAdmin is derived from the GITHUB_ADMINS allow-list on every login;
// nothing else writes it.
type User struct {
	ID           string    `json:"id"`
	GithubUserID int64     `json:"githubUserId"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
