package dto

import "time"

// SessionUser is the public identity returned by signup, login and
// check_session. The password hash never appears in any response shape.
type SessionUser struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// PasswordReset is returned by reset_request. The token is surfaced in the
// response because no mail delivery exists in this deployment.
type PasswordReset struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
