// Package models defines the TaskFlow data types shared by repositories,
// services, view controllers and the CLI.
package models

import "time"

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Notifications holds per-channel notification switches.
type Notifications struct {
	Email         bool `json:"email"`
	Push          bool `json:"push"`
	TaskReminders bool `json:"taskReminders"`
	TeamUpdates   bool `json:"teamUpdates"`
}

// Preferences are the user's UI settings.
type Preferences struct {
	Theme         Theme         `json:"theme"`
	Notifications Notifications `json:"notifications"`
	Timezone      string        `json:"timezone"`
}

// DefaultPreferences is what every new account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme: ThemeLight,
		Notifications: Notifications{
			Email:         true,
			Push:          true,
			TaskReminders: true,
			TeamUpdates:   true,
		},
		Timezone: "UTC",
	}
}

// User is an account record.
//
// Password holds whatever the configured credential verifier stores (the
// plaintext for the mock verifier, an encoded hash otherwise). It is never
// written into a persisted session.
type User struct {
	ID            int64       `json:"Id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Password      string      `json:"-"`
	EmailVerified bool        `json:"emailVerified"`
	CreatedAt     time.Time   `json:"createdAt"`
	LastLogin     *time.Time  `json:"lastLogin"`
	Preferences   Preferences `json:"preferences"`
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}

// SignupInput is the caller-supplied part of a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Session is the persisted "currently signed in" record.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
