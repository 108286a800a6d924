package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bedspace/backend/internal/model"
	"github.com/bedspace/backend/internal/repository"
)

// tenantPaymentsEntry is one tenant-listing pair in the landlord report.
// AssignmentNote is set only when the tenant has no matching payments, so
// its presence doubles as an "unpaid" marker for the month filter.
type tenantPaymentsEntry struct {
	TenantID          string          `json:"tenantId"`
	Email             string          `json:"email"`
	ListingID         uint64          `json:"listingId"`
	ListingTitle      string          `json:"listingTitle"`
	AssignedAt        *string         `json:"assignedAt,omitempty"`
	AssignedListingID *uint64         `json:"assignedListing,omitempty"`
	Payments          []model.Payment `json:"payments"`
	AssignmentNote    string          `json:"assignmentNote,omitempty"`
}

// TenantsPayments handles GET /api/payments/landlord/tenants-payments
// (landlord or admin). For each of the caller's listings with an assigned
// tenant it reports the tenant's payments, optionally filtered to a single
// month via the ?month=YYYY-MM query parameter.
func (h *PaymentHandler) TenantsPayments(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	month := c.QueryParam("month")

	ctx := c.Request().Context()
	rows, err := h.Listings.ListByLandlordWithTenant(ctx, callerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	tenantIDs := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !seen[row.TenantID] {
			seen[row.TenantID] = true
			tenantIDs = append(tenantIDs, row.TenantID)
		}
	}
	payments, err := h.Payments.ListByTenantIDs(ctx, tenantIDs, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, buildTenantsPaymentsReport(rows, payments))
}

// buildTenantsPaymentsReport groups payments by tenant identifier and
// pairs them with the landlord's tenant-listing rows.
func buildTenantsPaymentsReport(rows []repository.LandlordTenantRow, payments []model.Payment) []tenantPaymentsEntry {
	byTenant := make(map[string][]model.Payment, len(rows))
	for _, p := range payments {
		byTenant[p.TenantID] = append(byTenant[p.TenantID], p)
	}
	out := make([]tenantPaymentsEntry, 0, len(rows))
	for _, row := range rows {
		entry := tenantPaymentsEntry{
			TenantID:          row.TenantID,
			Email:             row.TenantEmail,
			ListingID:         row.ListingID,
			ListingTitle:      row.ListingTitle,
			AssignedListingID: row.AssignedListingID,
			Payments:          byTenant[row.TenantID],
		}
		assignedOn := "N/A"
		if row.AssignedAt != nil {
			formatted := row.AssignedAt.Format("2006-01-02")
			assignedOn = formatted
			entry.AssignedAt = &formatted
		}
		if len(entry.Payments) == 0 {
			entry.Payments = []model.Payment{}
			entry.AssignmentNote = fmt.Sprintf("Tenant assigned on %s to listing %s", assignedOn, row.ListingTitle)
		}
		out = append(out, entry)
	}
	return out
}
