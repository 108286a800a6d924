package model

import (
	"strings"
	"time"
)

// Canonical payment statuses.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

// Payment represents a row in the `payments` table.  TenantUserID is the
// numeric id of the paying user while TenantID is the string tenant
// identifier the landlord-facing endpoints key on.  Month is a "YYYY-MM"
// string; several rows may exist for the same tenant and month (partial
// payments are allowed).
type Payment struct {
	ID           uint64     `json:"id"`
	TenantUserID uint64     `json:"tenantUserId"`
	TenantID     string     `json:"tenantId"`
	ListingID    *uint64    `json:"listingId,omitempty"`
	Amount       float64    `json:"amount"`
	Month        string     `json:"month"`
	Status       string     `json:"status"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	// TenantEmail is populated by queries that join the users table; it is
	// not a column of the payments table itself.
	TenantEmail string `json:"tenantEmail,omitempty"`
}

// NormalizeStatus maps a status string in any case to its canonical form.
// The second return value is false for unknown statuses.
func NormalizeStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusPaid:
		return StatusPaid, true
	}
	return "", false
}
