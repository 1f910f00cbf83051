package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/subscription"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

type fakeCustomerForms struct {
	existing  *models.Customer
	submitted []dto.CustomerPayload
	updatedID string
	err       error
}

func (f *fakeCustomerForms) Get(ctx context.Context, id string) (*models.Customer, error) {
	if f.existing != nil && f.existing.ID == id {
		return f.existing, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
}

func (f *fakeCustomerForms) Create(ctx context.Context, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error) {
	f.submitted = append(f.submitted, payload)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Customer{ID: "c-new", FirstName: payload.FirstName}, nil
}

func (f *fakeCustomerForms) Update(ctx context.Context, id string, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error) {
	f.updatedID = id
	f.submitted = append(f.submitted, payload)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Customer{ID: id}, nil
}

func newDraftService(forms *fakeCustomerForms, max int) *DraftService {
	return NewDraftService(NewMemoryDraftStore(0, time.Hour), forms, NewMetricsService(), DraftConfig{MaxEntries: max, TTL: time.Hour}, zap.NewNop())
}

func fillEntry(t *testing.T, svc *DraftService, draftID, tempID, address, city string) {
	t.Helper()
	_, err := svc.UpdateField(context.Background(), draftID, "admin-1", tempID, dto.UpdateFieldRequest{Field: subscription.FieldAddress, Value: address})
	require.NoError(t, err)
	_, err = svc.UpdateField(context.Background(), draftID, "admin-1", tempID, dto.UpdateFieldRequest{Field: subscription.FieldCity, Value: city})
	require.NoError(t, err)
}

func TestDraftAddEntryCap(t *testing.T) {
	svc := newDraftService(&fakeCustomerForms{}, 2)
	ctx := context.Background()

	draft, err := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})
		require.NoError(t, err)
	}

	_, err = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})
	appErr := requireAppError(t, err, appErrors.ErrEntryLimit.Code)
	assert.Equal(t, 422, appErr.Status)

	stored, err := svc.Get(ctx, draft.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Editor.Count())
}

func TestDraftOwnedByCreator(t *testing.T) {
	svc := newDraftService(&fakeCustomerForms{}, 10)
	draft, err := svc.Create(context.Background(), "admin-1", dto.CreateDraftRequest{})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), draft.ID, "admin-2")
	requireAppError(t, err, appErrors.ErrNotFound.Code)
	_, err = svc.AddEntry(context.Background(), draft.ID, "admin-2", dto.AddEntryRequest{BundleID: "b1"})
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestDraftLoadsExistingCustomer(t *testing.T) {
	forms := &fakeCustomerForms{existing: &models.Customer{ID: "c1", BundleSubscriptions: []models.BundleSubscription{
		{BundleID: "b1", Status: models.StatusActive, Location: models.Location{Address: "Hamra 12", City: "Beirut"}},
		{BundleID: "b2", Status: models.StatusInactive, Location: models.Location{Address: "Office", City: "Beirut"}},
	}}}
	svc := newDraftService(forms, 10)

	draft, err := svc.Create(context.Background(), "admin-1", dto.CreateDraftRequest{CustomerID: "c1"})
	require.NoError(t, err)
	require.Equal(t, 2, draft.Editor.Count())
	assert.NotEqual(t, draft.Editor.Entries[0].TempID, draft.Editor.Entries[1].TempID)

	_, err = svc.Create(context.Background(), "admin-1", dto.CreateDraftRequest{CustomerID: "missing"})
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestDraftRemovalFlow(t *testing.T) {
	svc := newDraftService(&fakeCustomerForms{}, 10)
	ctx := context.Background()
	draft, _ := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})

	_, err := svc.ConfirmRemoval(ctx, draft.ID, "admin-1")
	requireAppError(t, err, appErrors.ErrConflict.Code)

	draft, err = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})
	require.NoError(t, err)
	tempID := draft.Editor.Entries[0].TempID

	draft, err = svc.RequestRemoval(ctx, draft.ID, "admin-1", tempID)
	require.NoError(t, err)
	assert.Equal(t, tempID, draft.Editor.PendingRemoval)

	draft, err = svc.CancelRemoval(ctx, draft.ID, "admin-1")
	require.NoError(t, err)
	assert.Empty(t, draft.Editor.PendingRemoval)
	assert.Equal(t, 1, draft.Editor.Count())

	_, err = svc.RequestRemoval(ctx, draft.ID, "admin-1", tempID)
	require.NoError(t, err)
	draft, err = svc.ConfirmRemoval(ctx, draft.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 0, draft.Editor.Count())

	_, err = svc.ToggleExpanded(ctx, draft.ID, "admin-1", tempID)
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestDraftValidateAndCopyPrimary(t *testing.T) {
	svc := newDraftService(&fakeCustomerForms{}, 10)
	ctx := context.Background()
	draft, _ := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})
	draft, _ = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})
	tempID := draft.Editor.Entries[0].TempID

	result, _, err := svc.Validate(ctx, draft.ID, "admin-1")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Address is required", result.Errors["address-"+tempID])

	draft, err = svc.CopyPrimaryLocation(ctx, draft.ID, "admin-1", tempID, dto.CopyLocationRequest{
		Location: dto.LocationPayload{Address: "Hamra 12", City: "Beirut", Floor: "3"},
	})
	require.NoError(t, err)
	assert.Empty(t, draft.Editor.Errors)
	assert.Equal(t, "3", draft.Editor.Entries[0].Floor)

	result, _, err = svc.Validate(ctx, draft.ID, "admin-1")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestDraftSubmitBlocksIncompleteEntries(t *testing.T) {
	forms := &fakeCustomerForms{}
	svc := newDraftService(forms, 10)
	ctx := context.Background()
	draft, _ := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})
	draft, _ = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})

	_, kept, err := svc.Submit(ctx, draft.ID, "admin-1", dto.SubmitDraftRequest{FirstName: "Rami"}, models.RequestMeta{})
	appErr := requireAppError(t, err, appErrors.ErrValidation.Code)
	fields := fieldMap(appErr.Details)
	assert.Equal(t, "Address is required", fields["bundleSubscriptions[0].location.address"])
	assert.Equal(t, "City is required", fields["bundleSubscriptions[0].location.city"])
	assert.Empty(t, forms.submitted)
	require.NotNil(t, kept)
	assert.Len(t, kept.Editor.Errors, 2)
}

func TestDraftSubmitMapsServerErrors(t *testing.T) {
	forms := &fakeCustomerForms{err: appErrors.WithFields("invalid customer payload", []appErrors.FieldError{
		{Field: "email", Message: "email must be a valid email address"},
		{Field: "bundleSubscriptions[0].bundleId", Message: "bundle does not exist"},
		{Field: "bundleSubscriptions[4].location.city", Message: "city is required"},
	})}
	svc := newDraftService(forms, 10)
	ctx := context.Background()
	draft, _ := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})
	draft, _ = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "gone"})
	tempID := draft.Editor.Entries[0].TempID
	fillEntry(t, svc, draft.ID, tempID, "Hamra 12", "Beirut")

	_, _, err := svc.Submit(ctx, draft.ID, "admin-1", dto.SubmitDraftRequest{Email: "bad"}, models.RequestMeta{})
	requireAppError(t, err, appErrors.ErrValidation.Code)
	require.Len(t, forms.submitted, 1)
	assert.Equal(t, "gone", forms.submitted[0].BundleSubscriptions[0].BundleID)

	stored, err := svc.Get(ctx, draft.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "bundle does not exist", stored.Editor.Errors[subscription.ErrorKey(subscription.FieldBundleID, tempID)])
	assert.Equal(t, map[string]string{"email": "email must be a valid email address"}, stored.FormErrors)
}

type flakyDraftStore struct {
	DraftStore
	failSave bool
}

func (s *flakyDraftStore) Save(ctx context.Context, draft *Draft, ttl time.Duration) error {
	if s.failSave {
		return errors.New("redis: connection refused")
	}
	return s.DraftStore.Save(ctx, draft, ttl)
}

func TestDraftSubmitReportsStoreFailure(t *testing.T) {
	store := &flakyDraftStore{DraftStore: NewMemoryDraftStore(0, time.Hour)}
	svc := NewDraftService(store, &fakeCustomerForms{}, NewMetricsService(), DraftConfig{MaxEntries: 10, TTL: time.Hour}, zap.NewNop())
	ctx := context.Background()
	draft, err := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})
	require.NoError(t, err)

	store.failSave = true
	_, kept, err := svc.Submit(ctx, draft.ID, "admin-1", dto.SubmitDraftRequest{FirstName: "Rami"}, models.RequestMeta{})
	appErr := requireAppError(t, err, appErrors.ErrServiceUnavailable.Code)
	assert.Equal(t, 503, appErr.Status)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "Address is required", fieldMap(appErr.Details)["bundleSubscriptions[0].location.address"])
	assert.Nil(t, kept)

	store.failSave = false
	stored, err := svc.Get(ctx, draft.ID, "admin-1")
	require.NoError(t, err)
	assert.Empty(t, stored.Editor.Errors)
}

func TestDraftSubmitSuccessDeletesDraft(t *testing.T) {
	forms := &fakeCustomerForms{existing: &models.Customer{ID: "c1"}}
	svc := newDraftService(forms, 10)
	ctx := context.Background()
	draft, _ := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{CustomerID: "c1"})
	draft, _ = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})
	fillEntry(t, svc, draft.ID, draft.Editor.Entries[0].TempID, "Hamra 12", "Beirut")

	customer, kept, err := svc.Submit(ctx, draft.ID, "admin-1", dto.SubmitDraftRequest{FirstName: "Rami"}, models.RequestMeta{})
	require.NoError(t, err)
	assert.Nil(t, kept)
	assert.Equal(t, "c1", customer.ID)
	assert.Equal(t, "c1", forms.updatedID)
	require.Len(t, forms.submitted[0].BundleSubscriptions, 1)
	assert.Equal(t, "Beirut", forms.submitted[0].BundleSubscriptions[0].Location.City)

	_, err = svc.Get(ctx, draft.ID, "admin-1")
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestDraftUpdateFieldRejectsUnknownField(t *testing.T) {
	svc := newDraftService(&fakeCustomerForms{}, 10)
	ctx := context.Background()
	draft, _ := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})
	draft, _ = svc.AddEntry(ctx, draft.ID, "admin-1", dto.AddEntryRequest{BundleID: "b1"})

	_, err := svc.UpdateField(ctx, draft.ID, "admin-1", draft.Editor.Entries[0].TempID, dto.UpdateFieldRequest{Field: "tempId", Value: "x"})
	requireAppError(t, err, appErrors.ErrValidation.Code)

	_, err = svc.SetStatus(ctx, draft.ID, "admin-1", draft.Editor.Entries[0].TempID, dto.SetStatusRequest{Status: models.StatusInactive})
	require.NoError(t, err)
}

func TestDraftDiscard(t *testing.T) {
	svc := newDraftService(&fakeCustomerForms{}, 10)
	ctx := context.Background()
	draft, _ := svc.Create(ctx, "admin-1", dto.CreateDraftRequest{})

	require.NoError(t, svc.Discard(ctx, draft.ID, "admin-1"))
	requireAppError(t, svc.Discard(ctx, draft.ID, "admin-1"), appErrors.ErrNotFound.Code)
}
