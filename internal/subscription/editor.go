// Package subscription holds the editing state of the bundle subscriptions
// attached to a customer form.
package subscription

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
)

// Editable entry fields.
const (
	FieldBundleID      = "bundleId"
	FieldAddress       = "address"
	FieldCity          = "city"
	FieldStreet        = "street"
	FieldBuilding      = "building"
	FieldFloor         = "floor"
	FieldGoogleMapsURL = "googleMapsUrl"
)

var (
	ErrEntryLimit       = errors.New("maximum number of bundle subscriptions reached")
	ErrEntryNotFound    = errors.New("bundle subscription entry not found")
	ErrNoPendingRemoval = errors.New("no removal pending")
	ErrUnknownField     = errors.New("unknown entry field")
	ErrInvalidStatus    = errors.New("status must be ACTIVE or INACTIVE")
)

var requiredMessages = map[string]string{
	FieldAddress: "Address is required",
	FieldCity:    "City is required",
}

// Entry is one bundle subscription being edited. TempID only identifies the
// entry inside the editor and never reaches the server payload.
type Entry struct {
	TempID        string        `json:"tempId"`
	BundleID      string        `json:"bundleId"`
	Status        models.Status `json:"status"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	Street        string        `json:"street"`
	Building      string        `json:"building"`
	Floor         string        `json:"floor"`
	GoogleMapsURL string        `json:"googleMapsUrl"`
}

// Editor is an ordered list of entries with accordion expansion, a staged
// removal and per-field validation errors keyed by ErrorKey.
type Editor struct {
	Entries        []Entry           `json:"entries"`
	Expanded       string            `json:"expanded,omitempty"`
	PendingRemoval string            `json:"pendingRemoval,omitempty"`
	Errors         map[string]string `json:"errors"`
	MaxEntries     int               `json:"maxEntries"`

	newID func() string
}

// New returns an empty editor capped at maxEntries entries (no cap when <= 0).
func New(maxEntries int) *Editor {
	return &Editor{
		Entries:    []Entry{},
		Errors:     map[string]string{},
		MaxEntries: maxEntries,
	}
}

// SetIDGenerator overrides tempId generation.
func (e *Editor) SetIDGenerator(fn func() string) {
	e.newID = fn
}

// ErrorKey is the validation error key for a field of an entry.
func ErrorKey(field, tempID string) string {
	return field + "-" + tempID
}

// Count returns the number of entries.
func (e *Editor) Count() int {
	return len(e.Entries)
}

// Entry returns the entry with tempID.
func (e *Editor) Entry(tempID string) (Entry, bool) {
	if i := e.index(tempID); i >= 0 {
		return e.Entries[i], true
	}
	return Entry{}, false
}

// AddEntry appends an ACTIVE entry for bundleID and expands it. At the cap the
// list is left unchanged and ErrEntryLimit is returned.
func (e *Editor) AddEntry(bundleID string) (Entry, error) {
	if e.MaxEntries > 0 && len(e.Entries) >= e.MaxEntries {
		return Entry{}, ErrEntryLimit
	}
	entry := Entry{
		TempID:   e.generateID(),
		BundleID: bundleID,
		Status:   models.StatusActive,
	}
	e.Entries = append(e.Entries, entry)
	e.Expanded = entry.TempID
	return entry, nil
}

// RequestRemoval stages tempID for removal pending confirmation.
func (e *Editor) RequestRemoval(tempID string) error {
	if e.index(tempID) < 0 {
		return ErrEntryNotFound
	}
	e.PendingRemoval = tempID
	return nil
}

// CancelRemoval discards the staged removal.
func (e *Editor) CancelRemoval() {
	e.PendingRemoval = ""
}

// ConfirmRemoval removes the staged entry together with its expansion and errors.
func (e *Editor) ConfirmRemoval() (Entry, error) {
	tempID := e.PendingRemoval
	if tempID == "" {
		return Entry{}, ErrNoPendingRemoval
	}
	e.PendingRemoval = ""

	i := e.index(tempID)
	if i < 0 {
		return Entry{}, ErrEntryNotFound
	}
	removed := e.Entries[i]
	e.Entries = append(e.Entries[:i:i], e.Entries[i+1:]...)

	if e.Expanded == tempID {
		e.Expanded = ""
	}
	for key := range e.Errors {
		if _, id, ok := strings.Cut(key, "-"); ok && id == tempID {
			delete(e.Errors, key)
		}
	}
	return removed, nil
}

// UpdateField replaces one field. A non-empty address or city clears its error.
func (e *Editor) UpdateField(tempID, field, value string) error {
	i := e.index(tempID)
	if i < 0 {
		return ErrEntryNotFound
	}
	entry := &e.Entries[i]
	switch field {
	case FieldBundleID:
		entry.BundleID = value
	case FieldAddress:
		entry.Address = value
	case FieldCity:
		entry.City = value
	case FieldStreet:
		entry.Street = value
	case FieldBuilding:
		entry.Building = value
	case FieldFloor:
		entry.Floor = value
	case FieldGoogleMapsURL:
		entry.GoogleMapsURL = value
	default:
		return ErrUnknownField
	}
	e.clearIfFilled(field, tempID, value)
	return nil
}

// SetStatus sets an entry ACTIVE or INACTIVE.
func (e *Editor) SetStatus(tempID string, status models.Status) error {
	if status != models.StatusActive && status != models.StatusInactive {
		return ErrInvalidStatus
	}
	i := e.index(tempID)
	if i < 0 {
		return ErrEntryNotFound
	}
	e.Entries[i].Status = status
	return nil
}

// CopyPrimaryLocationInto overwrites the entry location with the customer's primary location.
func (e *Editor) CopyPrimaryLocationInto(tempID string, primary models.Location) error {
	i := e.index(tempID)
	if i < 0 {
		return ErrEntryNotFound
	}
	entry := &e.Entries[i]
	entry.Address = primary.Address
	entry.City = primary.City
	entry.Street = primary.Street
	entry.Building = primary.Building
	entry.Floor = primary.Floor
	entry.GoogleMapsURL = ""
	if primary.GoogleMapsURL != nil {
		entry.GoogleMapsURL = *primary.GoogleMapsURL
	}
	e.clearIfFilled(FieldAddress, tempID, entry.Address)
	e.clearIfFilled(FieldCity, tempID, entry.City)
	return nil
}

// ValidateAll checks address and city on every entry, replaces the recorded
// errors with the result and reports overall validity.
func (e *Editor) ValidateAll() (map[string]string, bool) {
	errs := map[string]string{}
	for _, entry := range e.Entries {
		if isBlank(entry.Address) {
			errs[ErrorKey(FieldAddress, entry.TempID)] = requiredMessages[FieldAddress]
		}
		if isBlank(entry.City) {
			errs[ErrorKey(FieldCity, entry.TempID)] = requiredMessages[FieldCity]
		}
	}
	e.Errors = errs

	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out, len(errs) == 0
}

// ToggleExpanded opens tempID, or closes it when it is already open.
func (e *Editor) ToggleExpanded(tempID string) error {
	if e.index(tempID) < 0 {
		return ErrEntryNotFound
	}
	if e.Expanded == tempID {
		e.Expanded = ""
	} else {
		e.Expanded = tempID
	}
	return nil
}

// Load replaces the entries with existing subscriptions, each under a fresh tempId.
func (e *Editor) Load(subscriptions []models.BundleSubscription) {
	e.Entries = make([]Entry, 0, len(subscriptions))
	for _, sub := range subscriptions {
		entry := Entry{
			TempID:   e.generateID(),
			BundleID: sub.BundleID,
			Status:   sub.Status,
			Address:  sub.Location.Address,
			City:     sub.Location.City,
			Street:   sub.Location.Street,
			Building: sub.Location.Building,
			Floor:    sub.Location.Floor,
		}
		if entry.Status == "" {
			entry.Status = models.StatusActive
		}
		if sub.Location.GoogleMapsURL != nil {
			entry.GoogleMapsURL = *sub.Location.GoogleMapsURL
		}
		e.Entries = append(e.Entries, entry)
	}
	e.Expanded = ""
	e.PendingRemoval = ""
	e.Errors = map[string]string{}
}

// Payload renders the entries in order as submit payloads, dropping tempIds.
func (e *Editor) Payload() []dto.SubscriptionPayload {
	out := make([]dto.SubscriptionPayload, 0, len(e.Entries))
	for _, entry := range e.Entries {
		var mapsURL *string
		if entry.GoogleMapsURL != "" {
			url := entry.GoogleMapsURL
			mapsURL = &url
		}
		out = append(out, dto.SubscriptionPayload{
			BundleID: entry.BundleID,
			Status:   entry.Status,
			Location: dto.LocationPayload{
				Address:       entry.Address,
				City:          entry.City,
				Street:        entry.Street,
				Building:      entry.Building,
				Floor:         entry.Floor,
				GoogleMapsURL: mapsURL,
			},
		})
	}
	return out
}

func (e *Editor) generateID() string {
	if e.newID != nil {
		return e.newID()
	}
	return uuid.NewString()
}

func (e *Editor) index(tempID string) int {
	for i := range e.Entries {
		if e.Entries[i].TempID == tempID {
			return i
		}
	}
	return -1
}

func (e *Editor) clearIfFilled(field, tempID, value string) {
	if _, required := requiredMessages[field]; !required || isBlank(value) {
		return
	}
	delete(e.Errors, ErrorKey(field, tempID))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
