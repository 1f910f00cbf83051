package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/subscription"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

type customerForms interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error)
	Update(ctx context.Context, id string, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error)
}

// DraftConfig tunes draft sessions.
type DraftConfig struct {
	MaxEntries int
	TTL        time.Duration
}

// DraftService runs subscription editor commands against stored drafts.
type DraftService struct {
	store     DraftStore
	customers customerForms
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       DraftConfig
	now       func() time.Time
}

// NewDraftService constructs a DraftService.
func NewDraftService(store DraftStore, customers customerForms, metrics *MetricsService, cfg DraftConfig, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 2 * time.Hour
	}
	return &DraftService{store: store, customers: customers, metrics: metrics, logger: logger, cfg: cfg, now: time.Now}
}

// Create opens a draft. With a customer ID the customer's subscriptions are loaded for editing.
func (s *DraftService) Create(ctx context.Context, actorID string, req dto.CreateDraftRequest) (*Draft, error) {
	editor := subscription.New(s.cfg.MaxEntries)
	if req.CustomerID != "" {
		customer, err := s.customers.Get(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
		editor.Load(customer.BundleSubscriptions)
	}

	now := s.now().UTC()
	draft := &Draft{
		ID:         uuid.NewString(),
		OwnerID:    actorID,
		CustomerID: req.CustomerID,
		Editor:     editor,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.TTL),
	}
	if err := s.store.Save(ctx, draft, s.cfg.TTL); err != nil {
		return nil, err
	}
	s.metrics.RecordDraftCommand("create", nil)
	return draft, nil
}

// Get returns a draft owned by actorID.
func (s *DraftService) Get(ctx context.Context, id, actorID string) (*Draft, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.OwnerID != actorID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
	}
	return draft, nil
}

// Discard deletes a draft.
func (s *DraftService) Discard(ctx context.Context, id, actorID string) error {
	if _, err := s.Get(ctx, id, actorID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to discard draft")
	}
	return nil
}

// AddEntry appends an entry for bundleID.
func (s *DraftService) AddEntry(ctx context.Context, id, actorID string, req dto.AddEntryRequest) (*Draft, error) {
	return s.apply(ctx, "add_entry", id, actorID, func(e *subscription.Editor) error {
		if req.BundleID == "" {
			return appErrors.WithFields("invalid entry payload", []appErrors.FieldError{{Field: "bundleId", Message: "bundleId is required"}})
		}
		_, err := e.AddEntry(req.BundleID)
		return err
	})
}

// UpdateField replaces one field of an entry.
func (s *DraftService) UpdateField(ctx context.Context, id, actorID, tempID string, req dto.UpdateFieldRequest) (*Draft, error) {
	return s.apply(ctx, "update_field", id, actorID, func(e *subscription.Editor) error {
		return e.UpdateField(tempID, req.Field, req.Value)
	})
}

// SetStatus changes an entry status.
func (s *DraftService) SetStatus(ctx context.Context, id, actorID, tempID string, req dto.SetStatusRequest) (*Draft, error) {
	return s.apply(ctx, "set_status", id, actorID, func(e *subscription.Editor) error {
		return e.SetStatus(tempID, req.Status)
	})
}

// CopyPrimaryLocation copies the form's primary location into an entry.
func (s *DraftService) CopyPrimaryLocation(ctx context.Context, id, actorID, tempID string, req dto.CopyLocationRequest) (*Draft, error) {
	return s.apply(ctx, "copy_primary", id, actorID, func(e *subscription.Editor) error {
		return e.CopyPrimaryLocationInto(tempID, req.Location.ToModel())
	})
}

// ToggleExpanded opens or closes an entry.
func (s *DraftService) ToggleExpanded(ctx context.Context, id, actorID, tempID string) (*Draft, error) {
	return s.apply(ctx, "toggle", id, actorID, func(e *subscription.Editor) error {
		return e.ToggleExpanded(tempID)
	})
}

// RequestRemoval stages an entry for removal.
func (s *DraftService) RequestRemoval(ctx context.Context, id, actorID, tempID string) (*Draft, error) {
	return s.apply(ctx, "request_removal", id, actorID, func(e *subscription.Editor) error {
		return e.RequestRemoval(tempID)
	})
}

// ConfirmRemoval removes the staged entry.
func (s *DraftService) ConfirmRemoval(ctx context.Context, id, actorID string) (*Draft, error) {
	return s.apply(ctx, "confirm_removal", id, actorID, func(e *subscription.Editor) error {
		_, err := e.ConfirmRemoval()
		return err
	})
}

// CancelRemoval drops the staged removal.
func (s *DraftService) CancelRemoval(ctx context.Context, id, actorID string) (*Draft, error) {
	return s.apply(ctx, "cancel_removal", id, actorID, func(e *subscription.Editor) error {
		e.CancelRemoval()
		return nil
	})
}

// Validate checks every entry and stores the resulting errors on the draft.
func (s *DraftService) Validate(ctx context.Context, id, actorID string) (*dto.ValidationResult, *Draft, error) {
	var result dto.ValidationResult
	draft, err := s.apply(ctx, "validate", id, actorID, func(e *subscription.Editor) error {
		result.Errors, result.Valid = e.ValidateAll()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &result, draft, nil
}

// Submit validates the entries, then creates or updates the customer with the
// draft's subscriptions. Server field errors are mapped back onto the draft,
// which is kept; a successful submit deletes it.
func (s *DraftService) Submit(ctx context.Context, id, actorID string, req dto.SubmitDraftRequest, meta models.RequestMeta) (*models.Customer, *Draft, error) {
	draft, err := s.Get(ctx, id, actorID)
	if err != nil {
		return nil, nil, err
	}

	if errs, valid := draft.Editor.ValidateAll(); !valid {
		s.metrics.RecordDraftCommand("submit", errInvalidEntries)
		kept, err := s.keep(ctx, draft, appErrors.WithFields("bundle subscriptions are incomplete", entryFieldErrors(draft.Editor, errs)))
		return nil, kept, err
	}

	payload := dto.CustomerPayload{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		Status:              req.Status,
		Location:            req.Location,
		BundleSubscriptions: draft.Editor.Payload(),
	}

	var customer *models.Customer
	if draft.CustomerID != "" {
		customer, err = s.customers.Update(ctx, draft.CustomerID, payload, actorID, meta)
	} else {
		customer, err = s.customers.Create(ctx, payload, actorID, meta)
	}
	s.metrics.RecordDraftCommand("submit", err)
	if err != nil {
		appErr := appErrors.FromError(err)
		if len(appErr.Details) > 0 {
			form, dropped := draft.Editor.ApplyServerErrors(appErr.Details)
			draft.FormErrors = form
			for _, fe := range dropped {
				s.logger.Warn("server field error matches no entry", zap.String("draft_id", draft.ID), zap.String("field", fe.Field))
			}
			kept, err := s.keep(ctx, draft, err)
			return nil, kept, err
		}
		return nil, draft, err
	}

	if err := s.store.Delete(ctx, draft.ID); err != nil {
		s.logger.Warn("failed to delete submitted draft", zap.String("draft_id", draft.ID), zap.Error(err))
	}
	return customer, nil, nil
}

var errInvalidEntries = errors.New("invalid entries")

func (s *DraftService) apply(ctx context.Context, command, id, actorID string, fn func(e *subscription.Editor) error) (*Draft, error) {
	draft, err := s.Get(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	err = fn(draft.Editor)
	s.metrics.RecordDraftCommand(command, err)
	if err != nil {
		return nil, editorError(err)
	}
	draft.FormErrors = nil
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// keep stores draft after a failed submit and returns it with cause. When the
// store fails the draft is not returned and the error is a service unavailable
// carrying the field errors of cause.
func (s *DraftService) keep(ctx context.Context, draft *Draft, cause error) (*Draft, error) {
	if err := s.save(ctx, draft); err != nil {
		unavailable := appErrors.Wrap(err, appErrors.ErrServiceUnavailable.Code, appErrors.ErrServiceUnavailable.Status, "draft could not be saved")
		unavailable.Details = appErrors.FromError(cause).Details
		return nil, unavailable
	}
	return draft, cause
}

func (s *DraftService) save(ctx context.Context, draft *Draft) error {
	now := s.now().UTC()
	draft.UpdatedAt = now
	draft.ExpiresAt = now.Add(s.cfg.TTL)
	if err := s.store.Save(ctx, draft, s.cfg.TTL); err != nil {
		s.logger.Warn("failed to save draft", zap.String("draft_id", draft.ID), zap.Error(err))
		return err
	}
	return nil
}

func editorError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrEntryLimit):
		return appErrors.Clone(appErrors.ErrEntryLimit, err.Error())
	case errors.Is(err, subscription.ErrEntryNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, err.Error())
	case errors.Is(err, subscription.ErrNoPendingRemoval):
		return appErrors.Clone(appErrors.ErrConflict, err.Error())
	case errors.Is(err, subscription.ErrUnknownField), errors.Is(err, subscription.ErrInvalidStatus):
		return appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return appErrors.FromError(err)
}

// entryFieldErrors reports editor errors in submit path form, in entry order.
func entryFieldErrors(e *subscription.Editor, errs map[string]string) []appErrors.FieldError {
	out := make([]appErrors.FieldError, 0, len(errs))
	for i, entry := range e.Entries {
		for _, field := range []string{subscription.FieldAddress, subscription.FieldCity} {
			if msg, ok := errs[subscription.ErrorKey(field, entry.TempID)]; ok {
				out = append(out, appErrors.FieldError{
					Field:   fmt.Sprintf("bundleSubscriptions[%d].location.%s", i, field),
					Message: msg,
				})
			}
		}
	}
	return out
}
