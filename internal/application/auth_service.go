package application

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/address-book/internal/domain/entity"
	repo "github.com/oksasatya/address-book/internal/domain/repository"
	"github.com/oksasatya/address-book/internal/infrastructure/github"
	"github.com/oksasatya/address-book/pkg/apperr"
	"github.com/oksasatya/address-book/pkg/helpers"
)

// IdentityProvider is the slice of the GitHub client the login flow
// needs; tests substitute a fake.
type IdentityProvider interface {
	AuthorizeURL() string
	Exchange(ctx context.Context, code string) (*github.Profile, error)
}

// Identity is the per-request projection of a logged-in caller: the user
// row with its addresses eagerly loaded. It marshals in the wire shape
// clients expect (user fields flat, addresses nested).
type Identity struct {
	entity.User
	Addresses []entity.Address `json:"addresses"`
}

// AuthService owns the login flow and identity resolution. It is the only
// writer of the admin flag.
type AuthService struct {
	Users    repo.UserRepository
	Addrs    repo.AddressRepository
	Provider IdentityProvider
	Session  *helpers.SessionManager
	Admins   []string
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, addrs repo.AddressRepository, provider IdentityProvider, session *helpers.SessionManager, admins []string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:    users,
		Addrs:    addrs,
		Provider: provider,
		Session:  session,
		Admins:   admins,
		Logger:   logger,
	}
}

// AuthorizeURL returns the provider consent URL the browser is sent to.
func (s *AuthService) AuthorizeURL() string {
	return s.Provider.AuthorizeURL()
}

// Login runs the whole flow for an authorization code: provider exchange,
// login-or-create, admin recompute, token issue. The returned token is
// the bearer credential handed to the browser.
func (s *AuthService) Login(ctx context.Context, code string) (string, error) {
	profile, err := s.Provider.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	user, created, err := s.loginOrCreate(ctx, profile)
	if err != nil {
		return "", err
	}
	if created {
		s.Logger.WithFields(logrus.Fields{"user_id": user.ID, "name": user.Name}).Info("new user registered")
	}

	token, err := s.Session.Issue(user.ID)
	if err != nil {
		return "", apperr.New(http.StatusInternalServerError, "token issue failed", err)
	}
	return token, nil
}

// loginOrCreate resolves the provider profile to a local user, creating
// one on first login, and recomputes the admin flag from the allow-list.
// Membership is checked against the stored display name, which is set
// from the login name at creation and never changed afterwards.
//
// Each write path is a single statement, so a failure never leaves a
// half-applied login. Concurrent first logins for one GitHub account race
// to insert; the unique constraint on github_user_id decides the loser.
func (s *AuthService) loginOrCreate(ctx context.Context, p *github.Profile) (*entity.User, bool, error) {
	user, err := s.Users.GetByGithubID(ctx, p.ID)
	if errors.Is(err, repo.ErrNotFound) {
		user = &entity.User{
			GithubUserID: p.ID,
			Name:         p.Login,
			IsAdmin:      s.isAdminName(p.Login),
		}
		if err := s.Users.Create(ctx, user); err != nil {
			return nil, false, apperr.Persistence(err)
		}
		return user, true, nil
	}
	if err != nil {
		return nil, false, apperr.Persistence(err)
	}

	if isAdmin := s.isAdminName(user.Name); isAdmin != user.IsAdmin {
		if err := s.Users.SetAdmin(ctx, user.ID, isAdmin); err != nil {
			return nil, false, apperr.Persistence(err)
		}
		user.IsAdmin = isAdmin
	}
	return user, false, nil
}

func (s *AuthService) isAdminName(name string) bool {
	return slices.Contains(s.Admins, name)
}

// Identity loads the user with its addresses. ErrNotFound passes through
// so callers can treat a vanished user as an invalid credential.
func (s *AuthService) Identity(ctx context.Context, userID string) (*Identity, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	addrs, err := s.Addrs.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if addrs == nil {
		addrs = []entity.Address{}
	}
	return &Identity{User: *user, Addresses: addrs}, nil
}

// ListUsers returns every user with addresses eagerly loaded. Admin-only
// at the route layer.
func (s *AuthService) ListUsers(ctx context.Context) ([]Identity, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	out := make([]Identity, 0, len(users))
	for _, u := range users {
		addrs, err := s.Addrs.ListByUser(ctx, u.ID)
		if err != nil {
			return nil, apperr.Persistence(err)
		}
		if addrs == nil {
			addrs = []entity.Address{}
		}
		out = append(out, Identity{User: u, Addresses: addrs})
	}
	return out, nil
}
