// Package models defines the records kept in the local store: users, the
// registered-user directory, pickup requests and the static waste and reward
// catalogs.
package models

import "time"

// User is an authenticated identity together with its points balance.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy that callers may mutate freely.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// RegisteredUser is a directory entry. The password is kept as entered.
type RegisteredUser struct {
	User
	Password string `json:"password"`
}

// RegisterData carries the registration form.
type RegisterData struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}
