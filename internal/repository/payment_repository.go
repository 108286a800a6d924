package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bedspace/backend/internal/model"
)

const paymentColumns = "id,tenant_user_id,tenant_id,listing_id,amount,month,status,paid_at,created_at"

type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a payment row and fills in its generated ID. There is no
// uniqueness constraint on (tenant_id, month); multiple rows per month are
// valid and read as partial payments.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments (tenant_user_id, tenant_id, listing_id, amount, month, status, paid_at) VALUES (?,?,?,?,?,?,?)",
		p.TenantUserID, p.TenantID, p.ListingID, p.Amount, p.Month, p.Status, p.PaidAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a payment by id.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (model.Payment, error) {
	var p model.Payment
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.TenantUserID, &p.TenantID, &p.ListingID, &p.Amount,
			&p.Month, &p.Status, &p.PaidAt, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Payment{}, ErrPaymentNotFound
	}
	return p, err
}

// ListByTenantID returns all payments for a tenant identifier with the
// tenant's email joined in, oldest first.
func (r *PaymentRepo) ListByTenantID(ctx context.Context, tenantID string) ([]model.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.tenant_user_id, p.tenant_id, p.listing_id, p.amount, p.month, p.status, p.paid_at, p.created_at, u.email
		FROM payments p
		JOIN users u ON u.id = p.tenant_user_id
		WHERE p.tenant_id = ?
		ORDER BY p.id`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.TenantUserID, &p.TenantID, &p.ListingID,
			&p.Amount, &p.Month, &p.Status, &p.PaidAt, &p.CreatedAt, &p.TenantEmail); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByTenantIDs returns payments for any of the given tenant
// identifiers, optionally filtered to a single "YYYY-MM" month. An empty
// identifier list yields no rows without touching the database.
func (r *PaymentRepo) ListByTenantIDs(ctx context.Context, tenantIDs []string, month string) ([]model.Payment, error) {
	if len(tenantIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(tenantIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := "SELECT " + paymentColumns + " FROM payments WHERE tenant_id IN (" + placeholders + ")"
	args := make([]any, 0, len(tenantIDs)+1)
	for _, id := range tenantIDs {
		args = append(args, id)
	}
	if month != "" {
		query += " AND month=?"
		args = append(args, month)
	}
	query += " ORDER BY id"
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.TenantUserID, &p.TenantID, &p.ListingID,
			&p.Amount, &p.Month, &p.Status, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update applies a partial update to a payment. Only non-nil fields are
// written; callers verify existence beforehand.
func (r *PaymentRepo) Update(ctx context.Context, id uint64, amount *float64, month, status *string, paidAt *time.Time, listingID *uint64) error {
	var set []string
	var args []any
	if amount != nil {
		set = append(set, "amount=?")
		args = append(args, *amount)
	}
	if month != nil {
		set = append(set, "month=?")
		args = append(args, *month)
	}
	if status != nil {
		set = append(set, "status=?")
		args = append(args, *status)
	}
	if paidAt != nil {
		set = append(set, "paid_at=?")
		args = append(args, *paidAt)
	}
	if listingID != nil {
		set = append(set, "listing_id=?")
		args = append(args, *listingID)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE payments SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// Delete removes a payment by id.
func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM payments WHERE id=?", id)
	if err != nil {
		return err
	}
	return noneToNotFound(res, ErrPaymentNotFound)
}
