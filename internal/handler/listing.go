package handler

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bedspace/backend/internal/billing"
	"github.com/bedspace/backend/internal/model"
	"github.com/bedspace/backend/internal/repository"
)

// PhotoUploader is the slice of the object store the listing handlers
// need. The concrete implementation lives in internal/storage.
type PhotoUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (key, url string, err error)
	URL(key string) string
}

// ListingHandler bundles dependencies for the public browse endpoints and
// the landlord/admin listing CRUD.
type ListingHandler struct {
	Listings *repository.ListingRepo
	Photos   PhotoUploader
	Billing  billing.IntentCreator
}

func NewListingHandler(listings *repository.ListingRepo, photos PhotoUploader, b billing.IntentCreator) *ListingHandler {
	if listings == nil || photos == nil || b == nil {
		panic("nil dependency passed to NewListingHandler")
	}
	return &ListingHandler{Listings: listings, Photos: photos, Billing: b}
}

// resolvePhotoURL fills in the public photo URL for listings that carry a
// photo key but no stored URL. Listings without a photo stay untouched.
func (h *ListingHandler) resolvePhotoURL(l *model.Listing) {
	if l.PhotoURL == nil && l.PhotoKey != nil {
		url := h.Photos.URL(*l.PhotoKey)
		l.PhotoURL = &url
	}
}

// List handles GET /api/listings (public).
func (h *ListingHandler) List(c echo.Context) error {
	listings, err := h.Listings.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	for i := range listings {
		h.resolvePhotoURL(&listings[i])
	}
	return c.JSON(http.StatusOK, listings)
}

// Get handles GET /api/listings/:id (public).
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	h.resolvePhotoURL(&l)
	return c.JSON(http.StatusOK, l)
}

// Create handles POST /api/listings (landlord or admin, multipart). An
// optional "photo" file is streamed to the object store and its key and
// public URL stored on the listing. The caller becomes the owner.
func (h *ListingHandler) Create(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	title := c.FormValue("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title is required"})
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid price"})
	}
	l := model.Listing{Title: title, Price: price, LandlordID: callerID}
	if d := c.FormValue("description"); d != "" {
		l.Description = &d
	}

	ctx := c.Request().Context()
	if key, url, err := h.uploadPhoto(ctx, c); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "photo upload failed", "error": err.Error()})
	} else if key != "" {
		l.PhotoKey, l.PhotoURL = &key, &url
	}

	if err := h.Listings.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusCreated, l)
}

// Update handles PUT /api/listings/:id (landlord or admin, multipart).
// Landlords may only touch their own listings; a miss and a foreign
// listing produce the same 404 so existence does not leak. Admins bypass
// the ownership check.
func (h *ListingHandler) Update(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ownerScope := callerID
	if getRole(c) == model.RoleAdmin {
		ownerScope = 0 // admins may edit any listing
	}
	ctx := c.Request().Context()
	if _, err := h.Listings.GetByIDForOwner(ctx, id, ownerScope); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Listing not found or not authorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	// Multipart form fields are partial: absent keys leave the column alone.
	params, _ := c.FormParams()
	var title, description *string
	var price *float64
	if v, ok := params["title"]; ok && len(v) > 0 {
		title = &v[0]
	}
	if v, ok := params["description"]; ok && len(v) > 0 {
		description = &v[0]
	}
	if v, ok := params["price"]; ok && len(v) > 0 {
		p, err := strconv.ParseFloat(v[0], 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid price"})
		}
		price = &p
	}
	var photoKey, photoURL *string
	if key, url, err := h.uploadPhoto(ctx, c); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "photo upload failed", "error": err.Error()})
	} else if key != "" {
		photoKey, photoURL = &key, &url
	}

	if err := h.Listings.Update(ctx, id, title, description, price, photoKey, photoURL); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	updated, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	h.resolvePhotoURL(&updated)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/listings/:id with the same ownership
// semantics as Update.
func (h *ListingHandler) Delete(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ownerScope := callerID
	if getRole(c) == model.RoleAdmin {
		ownerScope = 0
	}
	if err := h.Listings.Delete(c.Request().Context(), id, ownerScope); err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Listing not found or not authorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Listing deleted"})
}

type bookReq struct {
	// Amount is in minor currency units (cents). When absent the listing
	// price is charged.
	Amount *int64 `json:"amount"`
}

// Book handles POST /api/listings/:id/book. It is deliberately open: a
// prospective tenant does not need an account to start a booking payment.
func (h *ListingHandler) Book(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	ctx := c.Request().Context()
	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	amount := int64(math.Round(l.Price * 100))
	if req.Amount != nil {
		amount = *req.Amount
	}
	secret, err := h.Billing.CreateIntent(ctx, amount, l.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Stripe error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// PaymentSuccess handles POST /api/listings/payment/success, a bare
// acknowledgement for client-side payment callbacks.
func (h *ListingHandler) PaymentSuccess(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment successful"})
}

// uploadPhoto streams the optional multipart "photo" file to the object
// store. It returns empty strings when the request carries no photo.
func (h *ListingHandler) uploadPhoto(ctx context.Context, c echo.Context) (key, url string, err error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return "", "", nil // no photo in the request
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()
	return h.Photos.Upload(ctx, fh.Filename, src, fh.Size, fh.Header.Get("Content-Type"))
}
