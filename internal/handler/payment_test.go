package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedspace/backend/internal/model"
	"github.com/bedspace/backend/internal/repository"
)

func newPaymentHandler(t *testing.T) (*PaymentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPaymentHandler(
		repository.NewUserRepo(db),
		repository.NewListingRepo(db),
		repository.NewPaymentRepo(db),
	), mock
}

func tenantUserRows(id uint64, email, tenantID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "role", "tenant_id",
		"assigned_listing_id", "assigned_at", "created_at", "updated_at",
	}).AddRow(id, email, "hash", model.RoleTenant, tenantID, nil, nil, testTime(), testTime())
}

func TestPayRejectsForeignTenantID(t *testing.T) {
	h, mock := newPaymentHandler(t)
	// The tenantId belongs to user 9, the caller is user 5.
	mock.ExpectQuery("SELECT .+ FROM users WHERE tenant_id=").
		WithArgs("tid-1").
		WillReturnRows(tenantUserRows(9, "other@example.com", "tid-1"))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/payments/pay",
		`{"tenantId":"tid-1","amount":500,"month":"2025-06"}`), rec)
	c.Set("user_id", uint64(5))
	c.Set("role", model.RoleTenant)

	require.NoError(t, h.Pay(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized for this tenantId")
}

func TestPayRecordsPaidPayment(t *testing.T) {
	h, mock := newPaymentHandler(t)
	mock.ExpectQuery("SELECT .+ FROM users WHERE tenant_id=").
		WithArgs("tid-1").
		WillReturnRows(tenantUserRows(9, "t@example.com", "tid-1"))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(uint64(9), "tid-1", nil, 500.0, "2025-06", model.StatusPaid, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(31, 1))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/payments/pay",
		`{"tenantId":"tid-1","amount":500,"month":"2025-06"}`), rec)
	c.Set("user_id", uint64(9))
	c.Set("role", model.RoleTenant)

	require.NoError(t, h.Pay(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string        `json:"message"`
		Payment model.Payment `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Payment recorded", resp.Message)
	assert.Equal(t, model.StatusPaid, resp.Payment.Status)
	require.NotNil(t, resp.Payment.PaidAt)
	assert.Equal(t, uint64(31), resp.Payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayValidatesBody(t *testing.T) {
	h, _ := newPaymentHandler(t)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/payments/pay",
		`{"tenantId":"tid-1","amount":0,"month":""}`), rec)
	c.Set("user_id", uint64(9))

	require.NoError(t, h.Pay(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignWritesListingAndUser(t *testing.T) {
	h, mock := newPaymentHandler(t)
	listingRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "title", "description", "price", "photo_key", "photo_url",
			"landlord_id", "tenant_id", "created_at",
		}).AddRow(3, "Loft", nil, 450.0, nil, nil, 7, nil, testTime())
	}
	mock.ExpectQuery("SELECT .+ FROM listings WHERE id=").
		WithArgs(uint64(3)).
		WillReturnRows(listingRow())
	mock.ExpectQuery("SELECT .+ FROM users WHERE tenant_id=").
		WithArgs("tid-1").
		WillReturnRows(tenantUserRows(9, "t@example.com", "tid-1"))
	mock.ExpectExec("UPDATE listings SET tenant_id=").
		WithArgs(uint64(9), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET assigned_listing_id=").
		WithArgs(uint64(3), sqlmock.AnyArg(), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM listings WHERE id=").
		WithArgs(uint64(3)).
		WillReturnRows(listingRow())

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/payments/assign",
		`{"listingId":3,"tenantId":"tid-1"}`), rec)
	c.Set("user_id", uint64(7))
	c.Set("role", model.RoleLandlord)

	require.NoError(t, h.Assign(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tenant assigned to property")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignInvalidTenant(t *testing.T) {
	h, mock := newPaymentHandler(t)
	mock.ExpectQuery("SELECT .+ FROM listings WHERE id=").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "price", "photo_key", "photo_url",
			"landlord_id", "tenant_id", "created_at",
		}).AddRow(3, "Loft", nil, 450.0, nil, nil, 7, nil, testTime()))
	mock.ExpectQuery("SELECT .+ FROM users WHERE tenant_id=").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "role", "tenant_id",
			"assigned_listing_id", "assigned_at", "created_at", "updated_at",
		}))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/payments/assign",
		`{"listingId":3,"tenantId":"ghost"}`), rec)
	c.Set("user_id", uint64(7))
	c.Set("role", model.RoleLandlord)

	require.NoError(t, h.Assign(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid tenant")
}

func TestUpdatePaymentIgnoresUnknownFields(t *testing.T) {
	h, mock := newPaymentHandler(t)
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "tenant_user_id", "tenant_id", "listing_id", "amount",
			"month", "status", "paid_at", "created_at",
		}).AddRow(5, 9, "tid-1", nil, 500.0, "2025-06", model.StatusPaid, nil, testTime())
	}
	mock.ExpectQuery("SELECT .+ FROM payments WHERE id=").
		WithArgs(uint64(5)).WillReturnRows(rows())
	mock.ExpectExec("UPDATE payments SET amount=").
		WithArgs(250.0, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM payments WHERE id=").
		WithArgs(uint64(5)).WillReturnRows(rows())

	// The password field must be dropped, not written.
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPut, "/api/payments/payments/5",
		`{"amount":250,"password":"sneaky"}`), rec)
	c.SetParamNames("paymentId")
	c.SetParamValues("5")

	require.NoError(t, h.UpdatePayment(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
