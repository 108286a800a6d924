package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedspace/backend/internal/model"
)

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_user_id", "tenant_id", "listing_id", "amount",
		"month", "status", "paid_at", "created_at",
	})
}

func TestPaymentCreateFillsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	paidAt := time.Now().UTC()
	p := model.Payment{
		TenantUserID: 9, TenantID: "tid-1", Amount: 500,
		Month: "2025-06", Status: model.StatusPaid, PaidAt: &paidAt,
	}
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(uint64(9), "tid-1", nil, 500.0, "2025-06", model.StatusPaid, &paidAt).
		WillReturnResult(sqlmock.NewResult(21, 1))

	require.NoError(t, repo.Create(context.Background(), &p))
	assert.Equal(t, uint64(21), p.ID)
}

func TestListByTenantIDsEmptySkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	got, err := repo.ListByTenantIDs(context.Background(), nil, "2025-06")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByTenantIDsWithMonthFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	paidAt := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE tenant_id IN (?,?) AND month=?")).
		WithArgs("tid-1", "tid-2", "2025-06").
		WillReturnRows(paymentRows().AddRow(
			1, 9, "tid-1", nil, 500.0, "2025-06", model.StatusPaid, paidAt, paidAt))

	got, err := repo.ListByTenantIDs(context.Background(), []string{"tid-1", "tid-2"}, "2025-06")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tid-1", got[0].TenantID)
	assert.Equal(t, 500.0, got[0].Amount)
}

func TestListByTenantIDJoinsEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	paidAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "tenant_user_id", "tenant_id", "listing_id", "amount",
		"month", "status", "paid_at", "created_at", "email",
	}).AddRow(1, 9, "tid-1", nil, 500.0, "2025-06", model.StatusPaid, paidAt, paidAt, "t@example.com")

	mock.ExpectQuery("JOIN users u ON u.id = p.tenant_user_id").
		WithArgs("tid-1").
		WillReturnRows(rows)

	got, err := repo.ListByTenantID(context.Background(), "tid-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t@example.com", got[0].TenantEmail)
}

func TestPaymentUpdatePartialSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	status := model.StatusPending
	amount := 250.0
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET amount=?, status=? WHERE id=?")).
		WithArgs(250.0, model.StatusPending, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), 5, &amount, nil, &status, nil, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	mock.ExpectExec("DELETE FROM payments WHERE id=").
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), ErrPaymentNotFound)
}
