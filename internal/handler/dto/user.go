// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/subtrack/subtrack/internal/model"

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// UpdateUserRequest represents the request body for updating a user.
type UpdateUserRequest struct {
	Username string `json:"username"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}
