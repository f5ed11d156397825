package models

import "time"

// Roles, in ascending order of privilege for club operations. "customer" is
// the default for self-registered accounts that have not been approved into
// membership yet.
const (
	RoleGuest    = "guest"
	RoleCustomer = "customer"
	RoleMember   = "member"
	RoleLeader   = "leader"
	RoleAdmin    = "admin"
)

// User statuses set by admins.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          string    `json:"role" bson:"role"`
	Status        string    `json:"status" bson:"status"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"created" bson:"created"`
	UpdatedAt     time.Time `json:"updated" bson:"updated"`
}

// Actor is the authenticated identity attached to a request. A request with
// no valid token acts as a guest with an empty ID.
type Actor struct {
	ID   string
	Role string
}

func ValidUserStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}

func ValidRole(r string) bool {
	switch r {
	case RoleGuest, RoleCustomer, RoleMember, RoleLeader, RoleAdmin:
		return true
	}
	return false
}
