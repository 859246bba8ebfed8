package domain

import "time"

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Username     string    `json:"username" dynamodbav:"username"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

// RegisterRequest accepts either "name" or "username" as the display name;
// both spellings are in use by existing clients.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DisplayName returns the username, falling back to name.
func (r RegisterRequest) DisplayName() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Name
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
