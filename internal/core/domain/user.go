package domain

import "time"

// UserRole defines the organisational role of a user. Workflow permissions
// are derived from this role, never checked ad hoc at call sites.
type UserRole string

const (
	RoleEmployee   UserRole = "EMPLOYEE"
	RoleManager    UserRole = "MANAGER"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleFinance    UserRole = "FINANCE"
	RoleCFO        UserRole = "CFO"
	RoleCEO        UserRole = "CEO"
	RoleCashier    UserRole = "CASHIER"
	RoleAdmin      UserRole = "ADMIN"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a member of staff in the domain.
type User struct {
	UserID                 string       `json:"userID"` // Primary Key (UUID)
	Username               string       `json:"username"`
	Name                   string       `json:"name"`
	Email                  string       `json:"email"`
	Role                   UserRole     `json:"role"`
	DepartmentID           *string      `json:"departmentID,omitempty"`
	PasswordHash           *string      `json:"-"` // nil for OAuth-only users
	AuthProvider           AuthProvider `json:"authProvider"`
	ProviderUserID         *string      `json:"-"` // e.g. Google's sub claim
	IsVerified             bool         `json:"isVerified"`
	RefreshTokenHash       string       `json:"-"`
	RefreshTokenExpiryTime *time.Time   `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// GoogleUserInfo holds the subset of Google profile claims the app consumes.
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
