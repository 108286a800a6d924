package model

import (
	"strings"
	"time"
)

// Canonical role names.  Input from clients is accepted in any case and
// normalized to these values before it touches the database or a token.
const (
	RoleTenant   = "TENANT"
	RoleLandlord = "LANDLORD"
	RoleAdmin    = "ADMIN"
)

// User represents a row in the `users` table.  TenantID is set only for
// TENANT accounts and identifies the tenant independently of the numeric
// primary key.  AssignedListingID/AssignedAt record the tenant's current
// listing assignment; last write wins, no history is kept.
//
// Fields:
//  ID                – primary key identifier of the user.
//  Email             – unique email address, stored lower-cased.
//  PasswordHash      – bcrypt hashed password.
//  Role              – canonical role name (TENANT, LANDLORD or ADMIN).
//  TenantID          – unique tenant identifier (nullable, TENANT only).
//  AssignedListingID – listing currently assigned to the tenant (nullable).
//  AssignedAt        – when the assignment was made (nullable).
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type User struct {
	ID                uint64     `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Role              string     `json:"role"`
	TenantID          *string    `json:"tenantId,omitempty"`
	AssignedListingID *uint64    `json:"assignedListingId,omitempty"`
	AssignedAt        *time.Time `json:"assignedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// NormalizeRole maps a role string in any case to its canonical form.
// The empty string defaults to TENANT, mirroring open registration.
// The second return value is false for unknown roles.
func NormalizeRole(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", RoleTenant:
		return RoleTenant, true
	case RoleLandlord:
		return RoleLandlord, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}
