package entity

import (
	"encoding/json"
	"time"
)

// Address is an owned, opaque document. JSON is stored as-is (jsonb);
// the server never inspects or validates its shape.
type Address struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	JSON      json.RawMessage `json:"json"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
