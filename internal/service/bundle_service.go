package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

type bundleRepository interface {
	FindByID(ctx context.Context, id string) (*models.Bundle, error)
	Create(ctx context.Context, bundle *models.Bundle) error
	Update(ctx context.Context, bundle *models.Bundle) error
	Delete(ctx context.Context, id string) error
	CountActiveSubscriptions(ctx context.Context, id string) (int, error)
}

// BundleService manages service bundles.
type BundleService struct {
	*ResourceView
	repo      bundleRepository
	audit     auditRepository
	refresher snapshotRefresher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBundleService creates an instance of BundleService.
func NewBundleService(repo bundleRepository, audit auditRepository, view *ResourceView, refresher snapshotRefresher, validate *validator.Validate, logger *zap.Logger) *BundleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &BundleService{ResourceView: view, repo: repo, audit: audit, refresher: refresher, validator: validate, logger: logger}
}

// Get returns a bundle by ID.
func (s *BundleService) Get(ctx context.Context, id string) (*models.Bundle, error) {
	bundle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "bundle not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bundle")
	}
	return bundle, nil
}

// Create adds a bundle.
func (s *BundleService) Create(ctx context.Context, payload dto.BundlePayload, actorID string, meta models.RequestMeta) (*models.Bundle, error) {
	if err := s.validate(payload); err != nil {
		return nil, err
	}
	bundle := &models.Bundle{
		Name:        strings.TrimSpace(payload.Name),
		Description: payload.Description,
		Price:       payload.Price,
		SpeedMbps:   payload.SpeedMbps,
		Status:      payload.Status,
	}
	if err := s.repo.Create(ctx, bundle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create bundle")
	}

	recordAudit(ctx, s.audit, s.logger, actorID, meta, auditEntry{
		action:     models.AuditActionBundleCreate,
		resource:   snapshot.Bundles,
		resourceID: bundle.ID,
		newValues:  map[string]interface{}{"name": bundle.Name, "price": bundle.Price},
	})
	requestRefresh(s.refresher, s.logger, snapshot.Bundles)
	return bundle, nil
}

// Update modifies a bundle. Customers are refreshed too since their rows carry bundle names.
func (s *BundleService) Update(ctx context.Context, id string, payload dto.BundlePayload, actorID string, meta models.RequestMeta) (*models.Bundle, error) {
	if err := s.validate(payload); err != nil {
		return nil, err
	}
	bundle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := map[string]interface{}{"name": bundle.Name, "price": bundle.Price, "status": bundle.Status}

	bundle.Name = strings.TrimSpace(payload.Name)
	bundle.Description = payload.Description
	bundle.Price = payload.Price
	bundle.SpeedMbps = payload.SpeedMbps
	bundle.Status = payload.Status
	if err := s.repo.Update(ctx, bundle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update bundle")
	}

	recordAudit(ctx, s.audit, s.logger, actorID, meta, auditEntry{
		action:     models.AuditActionBundleUpdate,
		resource:   snapshot.Bundles,
		resourceID: bundle.ID,
		oldValues:  old,
		newValues:  map[string]interface{}{"name": bundle.Name, "price": bundle.Price, "status": bundle.Status},
	})
	requestRefresh(s.refresher, s.logger, snapshot.Bundles, snapshot.Customers)
	return bundle, nil
}

// Delete removes a bundle that no active subscription uses.
func (s *BundleService) Delete(ctx context.Context, id string, actorID string, meta models.RequestMeta) error {
	bundle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.repo.CountActiveSubscriptions(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check bundle usage")
	}
	if active > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "bundle has active subscriptions")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete bundle")
	}

	recordAudit(ctx, s.audit, s.logger, actorID, meta, auditEntry{
		action:     models.AuditActionBundleDelete,
		resource:   snapshot.Bundles,
		resourceID: id,
		oldValues:  map[string]interface{}{"name": bundle.Name},
	})
	requestRefresh(s.refresher, s.logger, snapshot.Bundles, snapshot.Customers)
	return nil
}

func (s *BundleService) validate(payload dto.BundlePayload) error {
	fields, err := validatePayload(s.validator, payload, "invalid bundle payload")
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return appErrors.WithFields("invalid bundle payload", fields)
	}
	return nil
}
