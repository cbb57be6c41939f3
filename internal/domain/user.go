package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRef is the subset of User embedded in task responses.
type UserRef struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

// Ref returns the embeddable summary of the user.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Email: u.Email, FullName: u.FullName}
}
