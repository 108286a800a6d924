package model

import "time"

// Listing represents a row in the `listings` table.  PhotoKey is the
// object-store key of the uploaded photo and PhotoURL its public URL;
// both are empty when no photo was uploaded.  TenantID references the
// user currently assigned to the listing, not the string tenant
// identifier.
type Listing struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	PhotoKey    *string   `json:"photoKey,omitempty"`
	PhotoURL    *string   `json:"url,omitempty"`
	LandlordID  uint64    `json:"landlordId"`
	TenantID    *uint64   `json:"tenantId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
