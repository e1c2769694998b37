package users

import "time"

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Response is the public JSON view of a user.
type Response struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Response() Response {
	return Response{ID: u.ID, Email: u.Email}
}
