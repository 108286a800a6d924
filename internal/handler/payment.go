package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bedspace/backend/internal/model"
	"github.com/bedspace/backend/internal/queue"
	"github.com/bedspace/backend/internal/repository"
	queue_publisher "github.com/bedspace/backend/internal/service"
)

// PaymentHandler bundles dependencies for tenant assignment, rent
// recording and the admin payment endpoints.
type PaymentHandler struct {
	Users    *repository.UserRepo
	Listings *repository.ListingRepo
	Payments *repository.PaymentRepo
}

func NewPaymentHandler(u *repository.UserRepo, l *repository.ListingRepo, p *repository.PaymentRepo) *PaymentHandler {
	if u == nil || l == nil || p == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Users: u, Listings: l, Payments: p}
}

type assignReq struct {
	ListingID uint64 `json:"listingId"`
	TenantID  string `json:"tenantId"`
}

// Assign handles POST /api/payments/assign (landlord or admin). It writes
// the tenant reference on the listing and the assignment block on the
// user. The two writes are not wrapped in a transaction: a crash in
// between leaves a listing that points at a tenant without the tenant-side
// record, which the report surfaces via its assignment note.
func (h *PaymentHandler) Assign(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	ctx := c.Request().Context()
	listing, err := h.Listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	tenant, err := h.Users.GetByTenantID(ctx, req.TenantID)
	if err != nil || tenant.Role != model.RoleTenant {
		if err != nil && err != repository.ErrUserNotFound {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid tenant"})
	}

	now := time.Now().UTC()
	if err := h.Listings.AssignTenant(ctx, listing.ID, tenant.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	if err := h.Users.AssignListing(ctx, tenant.ID, listing.ID, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}

	// Best effort: assignment stands whether or not the event goes out.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishTenantAssigned(pubCtx, queue.TenantAssignedEvent{
			ListingID:    listing.ID,
			ListingTitle: listing.Title,
			TenantID:     req.TenantID,
			TenantEmail:  tenant.Email,
			LandlordID:   listing.LandlordID,
			AssignedAt:   now.Format(time.RFC3339),
		})
	}()

	updated, err := h.Listings.GetByID(ctx, listing.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Tenant assigned to property", "listing": updated})
}

type payReq struct {
	TenantID string  `json:"tenantId"`
	Amount   float64 `json:"amount"`
	Month    string  `json:"month"` // "YYYY-MM"
}

// Pay handles POST /api/payments/pay (tenant). The authenticated user must
// own the supplied tenant identifier. Payments recorded here are always
// PAID with paidAt set; there is no way to record a pending payment on
// this endpoint.
func (h *PaymentHandler) Pay(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req payReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.TenantID == "" || req.Month == "" || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tenantId, amount and month are required"})
	}
	ctx := c.Request().Context()
	tenant, err := h.Users.GetByTenantID(ctx, req.TenantID)
	if err != nil || tenant.ID != callerID {
		if err != nil && err != repository.ErrUserNotFound {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized for this tenantId"})
	}

	now := time.Now().UTC()
	payment := model.Payment{
		TenantUserID: tenant.ID,
		TenantID:     req.TenantID,
		ListingID:    tenant.AssignedListingID,
		Amount:       req.Amount,
		Month:        req.Month,
		Status:       model.StatusPaid,
		PaidAt:       &now,
	}
	if err := h.Payments.Create(ctx, &payment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishRentRecorded(pubCtx, queue.RentRecordedEvent{
			PaymentID: payment.ID,
			TenantID:  payment.TenantID,
			Amount:    payment.Amount,
			Month:     payment.Month,
			PaidAt:    now.Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "Payment recorded", "payment": payment})
}

// ListForTenant handles GET /api/payments/payments/tenant/:tenantId
// (landlord or admin) and returns all payment rows for the tenant with the
// tenant's email joined in.
func (h *PaymentHandler) ListForTenant(c echo.Context) error {
	payments, err := h.Payments.ListByTenantID(c.Request().Context(), c.Param("tenantId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

type paymentUpdateReq struct {
	Amount    *float64   `json:"amount"`
	Month     *string    `json:"month"`
	Status    *string    `json:"status"`
	PaidAt    *time.Time `json:"paidAt"`
	ListingID *uint64    `json:"listingId"`
}

// UpdatePayment handles PUT /api/payments/payments/:paymentId (admin).
// Binding to a typed struct means stray fields in the body, password
// included, are dropped rather than written.
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("paymentId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req paymentUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Status != nil {
		status, ok := model.NormalizeStatus(*req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
		}
		req.Status = &status
	}
	ctx := c.Request().Context()
	if _, err := h.Payments.GetByID(ctx, id); err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	if err := h.Payments.Update(ctx, id, req.Amount, req.Month, req.Status, req.PaidAt, req.ListingID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	updated, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePayment handles DELETE /api/payments/payments/:paymentId (admin).
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("paymentId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Payments.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment deleted"})
}
