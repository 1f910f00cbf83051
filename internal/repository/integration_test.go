package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/migrations"
	"github.com/noah-isme/isp-backoffice-api/pkg/config"
	"github.com/noah-isme/isp-backoffice-api/pkg/database"
)

// setupPostgres starts a disposable PostgreSQL and applies the schema.
// Set TEST_INTEGRATION to run it; Docker is required.
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("TEST_INTEGRATION not set")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		postgres.WithDatabase("isp_backoffice_test"),
		postgres.WithUsername("backoffice"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port.Port())
	require.NoError(t, err)

	db, err := database.NewPostgres(ctx, config.DatabaseConfig{
		Host:     host,
		Port:     portNum,
		User:     "backoffice",
		Password: "test-password",
		Name:     "isp_backoffice_test",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	version, err := database.Migrate(db, migrations.FS, nil)
	require.NoError(t, err)
	require.Equal(t, uint(1), version)
	return db
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	bundles := NewBundleRepository(db)
	customers := NewCustomerRepository(db)
	payments := NewPaymentRepository(db)

	fiber := &models.Bundle{Name: "Fiber 100", Price: 49.5, SpeedMbps: 100, Status: models.StatusActive}
	require.NoError(t, bundles.Create(ctx, fiber))

	maps := "https://maps.google.com/?q=33.89,35.50"
	customer := &models.Customer{
		FirstName: "Rima", LastName: "Haddad", Email: "rima@example.com", Phone: "+961 1 234567",
		Status:   models.StatusActive,
		Location: models.Location{Address: "Hamra 12", City: "Beirut"},
		BundleSubscriptions: []models.BundleSubscription{
			{BundleID: fiber.ID, Status: models.StatusActive, Location: models.Location{Address: "Hamra 12", City: "Beirut", GoogleMapsURL: &maps}},
		},
	}
	require.NoError(t, customers.Create(ctx, customer))

	found, err := bundles.ExistingIDs(ctx, []string{fiber.ID, "not-a-uuid"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{fiber.ID: true}, found)

	listed, err := customers.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].BundleSubscriptions, 1)
	assert.Equal(t, "Fiber 100", listed[0].BundleSubscriptions[0].BundleName)
	require.NotNil(t, listed[0].BundleSubscriptions[0].Location.GoogleMapsURL)
	assert.Equal(t, maps, *listed[0].BundleSubscriptions[0].Location.GoogleMapsURL)

	count, err := bundles.CountActiveSubscriptions(ctx, fiber.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	amount := 49.5
	paidAt := time.Now().UTC()
	require.NoError(t, payments.Create(ctx, &models.Payment{
		CustomerID: customer.ID, Amount: &amount, Method: models.MethodCash, Status: models.PaymentPaid, PaidAt: &paidAt,
	}))
	paid, err := payments.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "Rima Haddad", paid[0].CustomerName)

	require.NoError(t, customers.Delete(ctx, customer.ID))
	_, err = customers.FindByID(ctx, customer.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
