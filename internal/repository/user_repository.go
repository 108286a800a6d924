package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bedspace/backend/internal/model"
	"github.com/bedspace/backend/internal/utils"
)

const userColumns = "id,email,password_hash,role,tenant_id,assigned_listing_id,assigned_at,created_at,updated_at"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID. The password is hashed here so
// plaintext never reaches the database layer boundary. tenantID is nil for
// non-tenant roles.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, tenantID *string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, tenant_id) VALUES (?,?,?,?)",
		email, hash, role, tenantID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// GetByTenantID fetches a user by its string tenant identifier.
func (r *UserRepo) GetByTenantID(ctx context.Context, tenantID string) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE tenant_id=? LIMIT 1", tenantID)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.TenantID,
			&u.AssignedListingID, &u.AssignedAt, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// CountAdmins returns how many admin accounts exist. The register handler
// uses this for the unauthenticated bootstrap of the very first admin.
func (r *UserRepo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role=?", model.RoleAdmin).Scan(&n)
	return n, err
}

// List returns all users. The password hash is never selected.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,role,tenant_id,assigned_listing_id,assigned_at,created_at,updated_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.TenantID,
			&u.AssignedListingID, &u.AssignedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update applies a partial update to a user. Only non-nil fields are
// written; a provided password is re-hashed before storage.
func (r *UserRepo) Update(ctx context.Context, id uint64, email, role, password *string, cost int) error {
	set, args, err := userUpdateSet(email, role, password, cost)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	// Rows-affected is not checked here: MySQL reports zero for updates
	// that leave values unchanged. Callers verify existence beforehand.
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

// UpdateTenant is like Update but addresses the row by tenant identifier
// and only touches TENANT accounts.
func (r *UserRepo) UpdateTenant(ctx context.Context, tenantID string, email, password *string, cost int) error {
	set, args, err := userUpdateSet(email, nil, password, cost)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, tenantID, model.RoleTenant)
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE tenant_id=? AND role=?", args...)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

func userUpdateSet(email, role, password *string, cost int) ([]string, []any, error) {
	var set []string
	var args []any
	if email != nil {
		set = append(set, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*email)))
	}
	if role != nil {
		set = append(set, "role=?")
		args = append(args, *role)
	}
	if password != nil {
		hash, err := utils.HashPassword(*password, cost)
		if err != nil {
			return nil, nil, err
		}
		set = append(set, "password_hash=?")
		args = append(args, hash)
	}
	return set, args, nil
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	return noneToNotFound(res, ErrUserNotFound)
}

// DeleteTenant removes a TENANT account by tenant identifier.
func (r *UserRepo) DeleteTenant(ctx context.Context, tenantID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM users WHERE tenant_id=? AND role=?", tenantID, model.RoleTenant)
	if err != nil {
		return err
	}
	return noneToNotFound(res, ErrUserNotFound)
}

// AssignListing records the tenant's current listing assignment. Last
// write wins; no assignment history is kept.
func (r *UserRepo) AssignListing(ctx context.Context, userID, listingID uint64, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET assigned_listing_id=?, assigned_at=? WHERE id=?",
		listingID, at, userID)
	return err
}

// noneToNotFound maps a zero-rows-affected result to the given sentinel.
func noneToNotFound(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
