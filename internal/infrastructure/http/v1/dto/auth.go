package dto

import (
	"gestock/internal/domain/auth"
)

// LoginRequest carries credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest registers a new user. StoreID binds the user to one
// store; empty creates a global user.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=64"`
	Password string  `json:"password" binding:"required,min=8"`
	Email    *string `json:"email"`
	StoreID  *string `json:"storeId"`
}

// ToInput converts the request into the service payload.
func (r *CreateUserRequest) ToInput() (auth.CreateUserInput, error) {
	storeID, err := ParseOptionalID("storeId", r.StoreID)
	if err != nil {
		return auth.CreateUserInput{}, err
	}
	return auth.CreateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		StoreID:  storeID,
	}, nil
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
