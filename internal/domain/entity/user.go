// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserType distinguishes the two kinds of accounts on the board.
type UserType string

const (
	// UserTypeJobSeeker is the default account type for new registrations.
	UserTypeJobSeeker UserType = "job_seeker"
	// UserTypeEmployer marks accounts that post jobs.
	UserTypeEmployer UserType = "employer"
)

// Valid reports whether t is one of the known account types.
func (t UserType) Valid() bool {
	return t == UserTypeJobSeeker || t == UserTypeEmployer
}

// User is the core identity record. Email is the unique natural key: no two
// users ever share one, regardless of which provider created the account.
type User struct {
	ID        uuid.UUID // The unique identifier for the user.
	Email     string    // The user's primary email, used as the login identifier.
	FirstName string    // Optional given name; empty when the provider omitted it.
	LastName  string    // Optional family name.
	UserType  UserType  // "job_seeker" or "employer".
	Bio       string    // Free-form profile text.
	Location  string    // Free-form location string.
	Phone     string    // Contact phone number.
	Picture   string    // Profile picture URL, typically provider-sourced.
	IsPremium bool      // Whether the account has an active premium purchase.
	IsActive  bool      // Inactive accounts cannot log in.
	CreatedAt time.Time // Timestamp of account creation.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// DisplayName returns the user's full name, falling back to the email
// local part when no name is recorded.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}
