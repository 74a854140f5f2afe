package domain

import "time"

// Session is the server-held association between a client token and an
// authenticated user. It carries the user's public identity so that
// session checks answer without a database round-trip.
type Session struct {
	ID        string    `json:"-"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}
