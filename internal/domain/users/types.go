package users

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("user not found")
	QueryTimeoutDuration = time.Second * 5
)

// DefaultRegion is assigned to users created through sign-in until they pick
// one ("unset").
const DefaultRegion = "未設定"

type User struct {
	ID        int64     `json:"id"`
	GoogleID  string    `json:"google_id"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
