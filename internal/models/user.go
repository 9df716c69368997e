package models

import "strconv"

// User is the identity resolved from Telegram WebApp init data. It is
// immutable for the lifetime of a session.
type User struct {
	TelegramID int64  `json:"telegram_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
	IsAdmin    bool   `json:"is_admin"`
}

func (u *User) DisplayName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// Credential is the bearer value sent to the shop backend on behalf of
// this user.
func (u *User) Credential() string {
	return strconv.FormatInt(u.TelegramID, 10)
}
