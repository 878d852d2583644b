package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	Username    string     `json:"username" db:"username"`           // Primary key
	Password    string     `json:"-" db:"password"`                  // Bcrypt hash, never serialized
	FirstName   string     `json:"first_name" db:"first_name"`       // Given name
	LastName    string     `json:"last_name" db:"last_name"`         // Family name
	Phone       string     `json:"phone" db:"phone"`                 // Contact phone
	IsAdmin     bool       `json:"is_admin" db:"is_admin"`           // Administrative role flag
	JoinAt      time.Time  `json:"join_at" db:"join_at"`             // Registration timestamp
	LastLoginAt *time.Time `json:"last_login_at" db:"last_login_at"` // Last successful login, nil before first login
}

// UserSummary is the public profile shape embedded in listings and message views.
type UserSummary struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Phone     string `json:"phone" db:"phone"`
}

// UserProfile is the full profile returned for a single user lookup.
type UserProfile struct {
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// Summary projects the row into its public shape.
func (u *UserDB) Summary() UserSummary {
	return UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

// Profile projects the row into the full profile shape, dropping the hash.
func (u *UserDB) Profile() UserProfile {
	return UserProfile{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		JoinAt:      u.JoinAt,
		LastLoginAt: u.LastLoginAt,
	}
}
