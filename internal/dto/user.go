package dto

import (
	"github.com/markpedia/mpos_backend/internal/core/domain"
)

// CreateUserRequest defines the data for registering a new local user.
type CreateUserRequest struct {
	Username     string          `json:"username" binding:"required,min=3"`
	Password     string          `json:"password" binding:"required,min=8"`
	Name         string          `json:"name" binding:"required"`
	Email        string          `json:"email" binding:"omitempty,email"`
	Role         domain.UserRole `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER ACCOUNTANT FINANCE CFO CEO CASHIER ADMIN"`
	DepartmentID *string         `json:"departmentID"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email" binding:"omitempty,email"`
	Role         *domain.UserRole `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER ACCOUNTANT FINANCE CFO CEO CASHIER ADMIN"`
	DepartmentID *string          `json:"departmentID"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
