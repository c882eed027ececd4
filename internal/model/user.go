package model

import (
	"errors"
	"time"
)

// User represents a registered account.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"`
	ProfilePicID   *int64    `db:"profile_pic_id" json:"profile_pic_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the author block embedded in posts and comments.
type UserSummary struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	ProfilePicID *int64 `db:"profile_pic_id" json:"profile_pic_id,omitempty"`
}

// UserStats is the count block shown on a profile.
type UserStats struct {
	Posts     int `db:"posts" json:"posts"`
	Comments  int `db:"comments" json:"comments"`
	Reactions int `db:"reactions" json:"reactions"`
	Followers int `db:"followers" json:"followers"`
	Following int `db:"following" json:"following"`
}

// Profile is the full profile payload: user, counts and the viewer's
// follow state.
type Profile struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	ProfilePic  *Media    `json:"profile_pic,omitempty"`
	Stats       UserStats `json:"stats"`
	IsFollowing bool      `json:"is_following"`
}

// Identity is the resolved session: who is making the request.
// It is passed explicitly down from the middleware; there is no
// process-wide session state.
type Identity struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProfilePicID *int64 `json:"profile_pic_id,omitempty"`
}

// RegisterRequest is the sign-up body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the credential-check body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
