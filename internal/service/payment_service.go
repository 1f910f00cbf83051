package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

type paymentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
}

type customerLookup interface {
	FindByID(ctx context.Context, id string) (*models.Customer, error)
}

// PaymentService records and lists customer payments.
type PaymentService struct {
	*ResourceView
	repo      paymentRepository
	customers customerLookup
	audit     auditRepository
	refresher snapshotRefresher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService creates an instance of PaymentService.
func NewPaymentService(repo paymentRepository, customers customerLookup, audit auditRepository, view *ResourceView, refresher snapshotRefresher, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &PaymentService{ResourceView: view, repo: repo, customers: customers, audit: audit, refresher: refresher, validator: validate, logger: logger}
}

// Get returns a payment by ID.
func (s *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	return payment, nil
}

// Create records a payment. A PAID payment without paidAt is stamped with the current time.
func (s *PaymentService) Create(ctx context.Context, payload dto.PaymentPayload, actorID string, meta models.RequestMeta) (*models.Payment, error) {
	fields, err := validatePayload(s.validator, payload, "invalid payment payload")
	if err != nil {
		return nil, err
	}
	if payload.Status == models.PaymentPaid && payload.Amount == nil {
		fields = append(fields, appErrors.FieldError{Field: "amount", Message: "amount is required for paid payments"})
	}

	var customer *models.Customer
	if payload.CustomerID != "" {
		customer, err = s.customers.FindByID(ctx, payload.CustomerID)
		if errors.Is(err, sql.ErrNoRows) {
			fields = append(fields, appErrors.FieldError{Field: "customerId", Message: "customer does not exist"})
		} else if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load customer")
		}
	}
	if len(fields) > 0 {
		return nil, appErrors.WithFields("invalid payment payload", fields)
	}

	payment := &models.Payment{
		CustomerID:   payload.CustomerID,
		CustomerName: customer.FullName(),
		Amount:       payload.Amount,
		Method:       payload.Method,
		Status:       payload.Status,
		Reference:    payload.Reference,
		PaidAt:       payload.PaidAt,
	}
	if payment.Status == models.PaymentPaid && payment.PaidAt == nil {
		now := time.Now().UTC()
		payment.PaidAt = &now
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create payment")
	}

	recordAudit(ctx, s.audit, s.logger, actorID, meta, auditEntry{
		action:     models.AuditActionPaymentCreate,
		resource:   snapshot.Payments,
		resourceID: payment.ID,
		newValues:  map[string]interface{}{"customerId": payment.CustomerID, "amount": payment.Amount, "status": payment.Status},
	})
	requestRefresh(s.refresher, s.logger, snapshot.Payments)
	return payment, nil
}
