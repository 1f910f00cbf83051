package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
)

func TestPaymentListAllKeepsNullAmounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .* FROM payments p LEFT JOIN customers c .* ORDER BY p.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "customer_name", "amount", "method", "status", "reference", "paid_at", "created_at"}).
			AddRow("p1", "c1", "Rami Haddad", 49.5, "CARD", "PAID", "INV-1", now, now).
			AddRow("p2", "c1", "Rami Haddad", nil, "TRANSFER", "PENDING", "", nil, now))

	payments, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.NotNil(t, payments[0].Amount)
	assert.Equal(t, 49.5, *payments[0].Amount)
	assert.Nil(t, payments[1].Amount)
	assert.Nil(t, payments[1].PaidAt)
	assert.Nil(t, payments[1].Record()["amount"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(1, 1))

	payment := &models.Payment{CustomerID: "c1", Method: models.MethodCash, Status: models.PaymentPending}
	require.NoError(t, repo.Create(context.Background(), payment))
	assert.NotEmpty(t, payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
