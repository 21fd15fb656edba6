package entity

import (
	"time"
)

const (
	RoleUser = "user"

	// MaxFailedLoginAttempts locks the account once reached. Lockout never clears on its own.
	MaxFailedLoginAttempts = 5
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in PasswordHash.
//
// JSON names are the on-disk format of users.json.
type User struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"passwordHash"`
	FirstName           string     `json:"firstName"`
	LastName            string     `json:"lastName"`
	Role                string     `json:"role"`
	IPAddress           string     `json:"ipAddress,omitempty"`
	Location            string     `json:"location,omitempty"`
	RegistrationDate    time.Time  `json:"registrationDate"`
	LastLogin           *time.Time `json:"lastLogin"`
	FailedLoginAttempts int        `json:"failedLoginAttempts"`
	AccountLocked       bool       `json:"accountLocked"`
	IsActive            bool       `json:"isActive"`
}

// RecordFailedLogin bumps the failure counter and locks the account at the threshold.
// It reports whether this call transitioned the account into the locked state.
func (u *User) RecordFailedLogin() bool {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= MaxFailedLoginAttempts && !u.AccountLocked {
		u.AccountLocked = true
		return true
	}
	return false
}

// RecordSuccessfulLogin clears the failure counter and stamps the login time.
func (u *User) RecordSuccessfulLogin(at time.Time) {
	u.FailedLoginAttempts = 0
	t := at.UTC()
	u.LastLogin = &t
}

// PublicUser is a User without its password hash, safe to hand to clients.
type PublicUser struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	FirstName           string     `json:"firstName"`
	LastName            string     `json:"lastName"`
	Role                string     `json:"role"`
	IPAddress           string     `json:"ipAddress,omitempty"`
	Location            string     `json:"location,omitempty"`
	RegistrationDate    time.Time  `json:"registrationDate"`
	LastLogin           *time.Time `json:"lastLogin"`
	FailedLoginAttempts int        `json:"failedLoginAttempts"`
	AccountLocked       bool       `json:"accountLocked"`
	IsActive            bool       `json:"isActive"`
}

// Sanitize strips the password hash.
func (u *User) Sanitize() PublicUser {
	return PublicUser{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Role:                u.Role,
		IPAddress:           u.IPAddress,
		Location:            u.Location,
		RegistrationDate:    u.RegistrationDate,
		LastLogin:           u.LastLogin,
		FailedLoginAttempts: u.FailedLoginAttempts,
		AccountLocked:       u.AccountLocked,
		IsActive:            u.IsActive,
	}
}
