package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
)

const bundleSelect = `SELECT b.id, b.name, b.description, b.price, b.speed_mbps, b.status, COUNT(s.id) AS subscribers, b.created_at, b.updated_at
	FROM bundles b LEFT JOIN bundle_subscriptions s ON s.bundle_id = b.id AND s.status = 'ACTIVE'`

// BundleRepository persists service bundles.
type BundleRepository struct {
	db *sqlx.DB
}

// NewBundleRepository creates a new instance of BundleRepository.
func NewBundleRepository(db *sqlx.DB) *BundleRepository {
	return &BundleRepository{db: db}
}

// ListAll returns every non-deleted bundle with its active subscriber count.
func (r *BundleRepository) ListAll(ctx context.Context) ([]models.Bundle, error) {
	query := bundleSelect + ` WHERE b.deleted_at IS NULL GROUP BY b.id ORDER BY b.name`
	var bundles []models.Bundle
	if err := r.db.SelectContext(ctx, &bundles, query); err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	return bundles, nil
}

// FindByID returns a bundle by identifier.
func (r *BundleRepository) FindByID(ctx context.Context, id string) (*models.Bundle, error) {
	if !isUUID(id) {
		return nil, sql.ErrNoRows
	}
	query := bundleSelect + ` WHERE b.id = $1 AND b.deleted_at IS NULL GROUP BY b.id`
	var bundle models.Bundle
	if err := r.db.GetContext(ctx, &bundle, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find bundle by id: %w", err)
	}
	return &bundle, nil
}

// ExistingIDs reports which of ids refer to live bundles.
func (r *BundleRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	found := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	const query = `SELECT id FROM bundles WHERE id::text = ANY($1) AND deleted_at IS NULL`
	var rows []string
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("check bundle ids: %w", err)
	}
	for _, id := range rows {
		found[id] = true
	}
	return found, nil
}

// Create inserts a bundle.
func (r *BundleRepository) Create(ctx context.Context, bundle *models.Bundle) error {
	if bundle.ID == "" {
		bundle.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if bundle.CreatedAt.IsZero() {
		bundle.CreatedAt = now
	}
	bundle.UpdatedAt = now

	const query = `INSERT INTO bundles (id, name, description, price, speed_mbps, status, created_at, updated_at) VALUES (:id, :name, :description, :price, :speed_mbps, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, bundle); err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}
	return nil
}

// Update modifies a bundle's attributes.
func (r *BundleRepository) Update(ctx context.Context, bundle *models.Bundle) error {
	bundle.UpdatedAt = time.Now().UTC()
	const query = `UPDATE bundles SET name = :name, description = :description, price = :price, speed_mbps = :speed_mbps, status = :status, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, bundle); err != nil {
		return fmt.Errorf("update bundle: %w", err)
	}
	return nil
}

// CountActiveSubscriptions returns how many active subscriptions use the bundle.
func (r *BundleRepository) CountActiveSubscriptions(ctx context.Context, id string) (int, error) {
	const query = `SELECT COUNT(*) FROM bundle_subscriptions s JOIN customers c ON c.id = s.customer_id WHERE s.bundle_id = $1 AND s.status = 'ACTIVE' AND c.deleted_at IS NULL`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count bundle subscriptions: %w", err)
	}
	return count, nil
}

// Delete soft deletes a bundle.
func (r *BundleRepository) Delete(ctx context.Context, id string) error {
	const query = `UPDATE bundles SET status = 'INACTIVE', deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete bundle: %w", err)
	}
	return nil
}
