package dto

import "github.com/markpedia/mpos_backend/internal/core/domain"

// UserResponse defines the public view of a user.
type UserResponse struct {
	UserID       string          `json:"userID"`
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	Role         domain.UserRole `json:"role"`
	DepartmentID *string         `json:"departmentID,omitempty"`
	IsVerified   bool            `json:"isVerified"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Username:     user.Username,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		IsVerified:   user.IsVerified,
	}
}
