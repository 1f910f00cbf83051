package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
)

const customerColumns = `id, first_name, last_name, email, phone, status,
	address AS "location.address", city AS "location.city", street AS "location.street",
	building AS "location.building", floor AS "location.floor", google_maps_url AS "location.google_maps_url",
	created_at, updated_at`

const subscriptionColumns = `s.id, s.customer_id, s.bundle_id, COALESCE(b.name, '') AS bundle_name, s.status,
	s.address AS "location.address", s.city AS "location.city", s.street AS "location.street",
	s.building AS "location.building", s.floor AS "location.floor", s.google_maps_url AS "location.google_maps_url"`

// CustomerRepository provides database access for customers and their bundle subscriptions.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// ListAll returns every non-deleted customer with its subscriptions attached.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE deleted_at IS NULL ORDER BY created_at DESC`, customerColumns)
	var customers []models.Customer
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	subsQuery := fmt.Sprintf(`SELECT %s FROM bundle_subscriptions s LEFT JOIN bundles b ON b.id = s.bundle_id JOIN customers c ON c.id = s.customer_id WHERE c.deleted_at IS NULL ORDER BY s.customer_id, s.position`, subscriptionColumns)
	var subs []models.BundleSubscription
	if err := r.db.SelectContext(ctx, &subs, subsQuery); err != nil {
		return nil, fmt.Errorf("list bundle subscriptions: %w", err)
	}

	byCustomer := make(map[string][]models.BundleSubscription, len(customers))
	for _, sub := range subs {
		byCustomer[sub.CustomerID] = append(byCustomer[sub.CustomerID], sub)
	}
	for i := range customers {
		customers[i].BundleSubscriptions = byCustomer[customers[i].ID]
		if customers[i].BundleSubscriptions == nil {
			customers[i].BundleSubscriptions = []models.BundleSubscription{}
		}
	}
	return customers, nil
}

// FindByID returns a customer with its subscriptions.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	if !isUUID(id) {
		return nil, sql.ErrNoRows
	}
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1 AND deleted_at IS NULL LIMIT 1`, customerColumns)
	var customer models.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find customer by id: %w", err)
	}

	subsQuery := fmt.Sprintf(`SELECT %s FROM bundle_subscriptions s LEFT JOIN bundles b ON b.id = s.bundle_id WHERE s.customer_id = $1 ORDER BY s.position`, subscriptionColumns)
	customer.BundleSubscriptions = []models.BundleSubscription{}
	if err := r.db.SelectContext(ctx, &customer.BundleSubscriptions, subsQuery, id); err != nil {
		return nil, fmt.Errorf("find customer subscriptions: %w", err)
	}
	return &customer, nil
}

// FindByEmail returns the non-deleted customer using email.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL LIMIT 1`, customerColumns)
	var customer models.Customer
	if err := r.db.GetContext(ctx, &customer, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	return &customer, nil
}

// Create inserts a customer and its subscriptions in one transaction.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create customer: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO customers (id, first_name, last_name, email, phone, status, address, city, street, building, floor, google_maps_url, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	loc := customer.Location
	if _, err := tx.ExecContext(ctx, query, customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.Phone, customer.Status,
		loc.Address, loc.City, loc.Street, loc.Building, loc.Floor, loc.GoogleMapsURL, customer.CreatedAt, customer.UpdatedAt); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	if err := insertSubscriptions(ctx, tx, customer); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create customer: %w", err)
	}
	return nil
}

// Update replaces the customer fields and its full subscription list.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update customer: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `UPDATE customers SET first_name = $2, last_name = $3, email = $4, phone = $5, status = $6, address = $7, city = $8, street = $9, building = $10, floor = $11, google_maps_url = $12, updated_at = $13 WHERE id = $1 AND deleted_at IS NULL`
	loc := customer.Location
	if _, err := tx.ExecContext(ctx, query, customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.Phone, customer.Status,
		loc.Address, loc.City, loc.Street, loc.Building, loc.Floor, loc.GoogleMapsURL, customer.UpdatedAt); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bundle_subscriptions WHERE customer_id = $1`, customer.ID); err != nil {
		return fmt.Errorf("clear customer subscriptions: %w", err)
	}
	if err := insertSubscriptions(ctx, tx, customer); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update customer: %w", err)
	}
	return nil
}

// Delete performs a soft delete by marking the customer inactive and deleted.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	const query = `UPDATE customers SET status = 'INACTIVE', deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func insertSubscriptions(ctx context.Context, tx *sqlx.Tx, customer *models.Customer) error {
	const query = `INSERT INTO bundle_subscriptions (id, customer_id, bundle_id, position, status, address, city, street, building, floor, google_maps_url) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i := range customer.BundleSubscriptions {
		sub := &customer.BundleSubscriptions[i]
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
		sub.CustomerID = customer.ID
		loc := sub.Location
		if _, err := tx.ExecContext(ctx, query, sub.ID, customer.ID, sub.BundleID, i, sub.Status,
			loc.Address, loc.City, loc.Street, loc.Building, loc.Floor, loc.GoogleMapsURL); err != nil {
			return fmt.Errorf("create bundle subscription %d: %w", i, err)
		}
	}
	return nil
}
