package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

type customerRepository interface {
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
}

type bundleLookup interface {
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

// CustomerService handles customer listing and the customer form submit.
type CustomerService struct {
	*ResourceView
	repo             customerRepository
	bundles          bundleLookup
	audit            auditRepository
	refresher        snapshotRefresher
	validator        *validator.Validate
	logger           *zap.Logger
	maxSubscriptions int
}

// NewCustomerService creates an instance of CustomerService.
func NewCustomerService(repo customerRepository, bundles bundleLookup, audit auditRepository, view *ResourceView, refresher snapshotRefresher, maxSubscriptions int, validate *validator.Validate, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &CustomerService{
		ResourceView:     view,
		repo:             repo,
		bundles:          bundles,
		audit:            audit,
		refresher:        refresher,
		validator:        validate,
		logger:           logger,
		maxSubscriptions: maxSubscriptions,
	}
}

// Get returns a customer with its subscriptions.
func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load customer")
	}
	return customer, nil
}

// Create validates and stores a new customer with its subscriptions.
func (s *CustomerService) Create(ctx context.Context, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error) {
	if err := s.validate(ctx, payload, ""); err != nil {
		return nil, err
	}

	customer := customerFromPayload(payload)
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create customer")
	}

	recordAudit(ctx, s.audit, s.logger, actorID, meta, auditEntry{
		action:     models.AuditActionCustomerCreate,
		resource:   snapshot.Customers,
		resourceID: customer.ID,
		newValues:  map[string]interface{}{"email": customer.Email, "subscriptions": len(customer.BundleSubscriptions)},
	})
	requestRefresh(s.refresher, s.logger, snapshot.Customers, snapshot.Bundles)
	return customer, nil
}

// Update replaces a customer and its full subscription list.
func (s *CustomerService) Update(ctx context.Context, id string, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, payload, id); err != nil {
		return nil, err
	}

	customer := customerFromPayload(payload)
	customer.ID = existing.ID
	customer.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update customer")
	}

	recordAudit(ctx, s.audit, s.logger, actorID, meta, auditEntry{
		action:     models.AuditActionCustomerUpdate,
		resource:   snapshot.Customers,
		resourceID: customer.ID,
		oldValues:  map[string]interface{}{"status": existing.Status, "subscriptions": len(existing.BundleSubscriptions)},
		newValues:  map[string]interface{}{"status": customer.Status, "subscriptions": len(customer.BundleSubscriptions)},
	})
	requestRefresh(s.refresher, s.logger, snapshot.Customers, snapshot.Bundles)
	return customer, nil
}

// Delete soft deletes a customer.
func (s *CustomerService) Delete(ctx context.Context, id string, actorID string, meta models.RequestMeta) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete customer")
	}

	recordAudit(ctx, s.audit, s.logger, actorID, meta, auditEntry{
		action:     models.AuditActionCustomerDelete,
		resource:   snapshot.Customers,
		resourceID: id,
		oldValues:  map[string]interface{}{"email": existing.Email, "status": existing.Status},
	})
	requestRefresh(s.refresher, s.logger, snapshot.Customers, snapshot.Bundles)
	return nil
}

// validate collects every field error of the payload; excludeID skips the
// customer itself in the email uniqueness check.
func (s *CustomerService) validate(ctx context.Context, payload dto.CustomerPayload, excludeID string) error {
	fields, err := validatePayload(s.validator, payload, "invalid customer payload")
	if err != nil {
		return err
	}

	if s.maxSubscriptions > 0 && len(payload.BundleSubscriptions) > s.maxSubscriptions {
		fields = append(fields, appErrors.FieldError{
			Field:   "bundleSubscriptions",
			Message: fmt.Sprintf("at most %d bundle subscriptions are allowed", s.maxSubscriptions),
		})
	}

	ids := make([]string, 0, len(payload.BundleSubscriptions))
	for _, sub := range payload.BundleSubscriptions {
		if sub.BundleID != "" {
			ids = append(ids, sub.BundleID)
		}
	}
	if len(ids) > 0 && s.bundles != nil {
		found, err := s.bundles.ExistingIDs(ctx, ids)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check bundles")
		}
		for i, sub := range payload.BundleSubscriptions {
			if sub.BundleID != "" && !found[sub.BundleID] {
				fields = append(fields, appErrors.FieldError{
					Field:   fmt.Sprintf("bundleSubscriptions[%d].bundleId", i),
					Message: "bundle does not exist",
				})
			}
		}
	}

	if len(fields) > 0 {
		return appErrors.WithFields("invalid customer payload", fields)
	}

	existing, err := s.repo.FindByEmail(ctx, payload.Email)
	switch {
	case err == nil && existing.ID != excludeID:
		conflict := appErrors.Clone(appErrors.ErrConflict, "email already exists")
		conflict.Details = []appErrors.FieldError{{Field: "email", Message: "email already exists"}}
		return conflict
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email uniqueness")
	}
	return nil
}

func customerFromPayload(payload dto.CustomerPayload) *models.Customer {
	customer := &models.Customer{
		FirstName:           strings.TrimSpace(payload.FirstName),
		LastName:            strings.TrimSpace(payload.LastName),
		Email:               strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:               strings.TrimSpace(payload.Phone),
		Status:              payload.Status,
		Location:            payload.Location.ToModel(),
		BundleSubscriptions: make([]models.BundleSubscription, 0, len(payload.BundleSubscriptions)),
	}
	for _, sub := range payload.BundleSubscriptions {
		customer.BundleSubscriptions = append(customer.BundleSubscriptions, models.BundleSubscription{
			BundleID: sub.BundleID,
			Status:   sub.Status,
			Location: sub.Location.ToModel(),
		})
	}
	return customer
}
