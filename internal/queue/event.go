// Package queue defines message payloads exchanged over the message broker.
package queue

// TenantAssignedEvent is published when a landlord or admin assigns a
// tenant to a listing. It carries enough information for downstream
// consumers to notify or log without querying the primary database.
type TenantAssignedEvent struct {
	ListingID    uint64 `json:"listing_id"`
	ListingTitle string `json:"listing_title"`
	TenantID     string `json:"tenant_id"`
	TenantEmail  string `json:"tenant_email"`
	LandlordID   uint64 `json:"landlord_id"`
	AssignedAt   string `json:"assigned_at"`
}

// RentRecordedEvent is published when a tenant records a monthly rent
// payment.
type RentRecordedEvent struct {
	PaymentID uint64  `json:"payment_id"`
	TenantID  string  `json:"tenant_id"`
	Amount    float64 `json:"amount"`
	Month     string  `json:"month"`
	PaidAt    string  `json:"paid_at"`
}
