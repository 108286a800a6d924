package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bedspace/backend/internal/model"
)

const listingColumns = "id,title,description,price,photo_key,photo_url,landlord_id,tenant_id,created_at"

type ListingRepo struct{ DB *sql.DB }

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{DB: db} }

// Create inserts a listing and fills in its generated ID.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO listings (title, description, price, photo_key, photo_url, landlord_id) VALUES (?,?,?,?,?,?)",
		l.Title, l.Description, l.Price, l.PhotoKey, l.PhotoURL, l.LandlordID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByID fetches a listing by id.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (model.Listing, error) {
	return r.getOne(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id=? LIMIT 1", id)
}

// GetByIDForOwner fetches a listing scoped to its owning landlord. An
// ownerID of zero disables the ownership filter (admin bypass). A miss is
// reported as ErrListingNotFound either way so existence does not leak to
// non-owners.
func (r *ListingRepo) GetByIDForOwner(ctx context.Context, id, ownerID uint64) (model.Listing, error) {
	if ownerID == 0 {
		return r.GetByID(ctx, id)
	}
	return r.getOne(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id=? AND landlord_id=? LIMIT 1", id, ownerID)
}

func (r *ListingRepo) getOne(ctx context.Context, query string, args ...any) (model.Listing, error) {
	var l model.Listing
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&l.ID, &l.Title, &l.Description, &l.Price, &l.PhotoKey, &l.PhotoURL,
			&l.LandlordID, &l.TenantID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Listing{}, ErrListingNotFound
	}
	return l, err
}

// List returns all listings, newest first.
func (r *ListingRepo) List(ctx context.Context) ([]model.Listing, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Listing
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Price, &l.PhotoKey,
			&l.PhotoURL, &l.LandlordID, &l.TenantID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update applies a partial update. Only non-nil fields are written.
// Ownership is checked by the caller via GetByIDForOwner before updating.
func (r *ListingRepo) Update(ctx context.Context, id uint64, title, description *string, price *float64, photoKey, photoURL *string) error {
	var set []string
	var args []any
	if title != nil {
		set = append(set, "title=?")
		args = append(args, strings.TrimSpace(*title))
	}
	if description != nil {
		set = append(set, "description=?")
		args = append(args, *description)
	}
	if price != nil {
		set = append(set, "price=?")
		args = append(args, *price)
	}
	if photoKey != nil {
		set = append(set, "photo_key=?")
		args = append(args, *photoKey)
	}
	if photoURL != nil {
		set = append(set, "photo_url=?")
		args = append(args, *photoURL)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE listings SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// Delete removes a listing scoped to its owning landlord; ownerID zero
// disables the filter. A miss maps to ErrListingNotFound regardless of
// whether the row was absent or owned by someone else.
func (r *ListingRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	var (
		res sql.Result
		err error
	)
	if ownerID == 0 {
		res, err = r.DB.ExecContext(ctx, "DELETE FROM listings WHERE id=?", id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"DELETE FROM listings WHERE id=? AND landlord_id=?", id, ownerID)
	}
	if err != nil {
		return err
	}
	return noneToNotFound(res, ErrListingNotFound)
}

// AssignTenant points the listing at the assigned tenant's user id.
func (r *ListingRepo) AssignTenant(ctx context.Context, listingID, tenantUserID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE listings SET tenant_id=? WHERE id=?", tenantUserID, listingID)
	return err
}

// LandlordTenantRow is one listing of a landlord joined with its assigned
// tenant. Listings without a tenant are excluded by the query.
type LandlordTenantRow struct {
	ListingID         uint64
	ListingTitle      string
	TenantID          string
	TenantEmail       string
	AssignedListingID *uint64
	AssignedAt        *time.Time
}

// ListByLandlordWithTenant returns the landlord's listings that have an
// assigned tenant, joined with the tenant's identifier, email and
// assignment block for the payments report.
func (r *ListingRepo) ListByLandlordWithTenant(ctx context.Context, landlordID uint64) ([]LandlordTenantRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.id, l.title, u.tenant_id, u.email, u.assigned_listing_id, u.assigned_at
		FROM listings l
		JOIN users u ON u.id = l.tenant_id
		WHERE l.landlord_id = ? AND u.tenant_id IS NOT NULL
		ORDER BY l.id`, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LandlordTenantRow
	for rows.Next() {
		var row LandlordTenantRow
		if err := rows.Scan(&row.ListingID, &row.ListingTitle, &row.TenantID,
			&row.TenantEmail, &row.AssignedListingID, &row.AssignedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
