package dto

import "github.com/noah-isme/isp-backoffice-api/internal/models"

// CreateDraftRequest opens a subscription editing session, optionally for an existing customer.
type CreateDraftRequest struct {
	CustomerID string `json:"customerId"`
}

// AddEntryRequest adds a bundle subscription entry.
type AddEntryRequest struct {
	BundleID string `json:"bundleId" validate:"required"`
}

// UpdateFieldRequest replaces one field of an entry.
type UpdateFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// SetStatusRequest changes an entry status.
type SetStatusRequest struct {
	Status models.Status `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

// CopyLocationRequest copies the customer's primary location into an entry.
type CopyLocationRequest struct {
	Location LocationPayload `json:"location"`
}

// SubmitDraftRequest carries the top-level customer fields; subscriptions come from the draft.
type SubmitDraftRequest struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Status    models.Status   `json:"status"`
	Location  LocationPayload `json:"location"`
}

// ValidationResult reports editor validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}
