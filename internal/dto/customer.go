package dto

import "github.com/noah-isme/isp-backoffice-api/internal/models"

// LocationPayload is the location shape accepted on submit.
type LocationPayload struct {
	Address       string  `json:"address" validate:"required"`
	City          string  `json:"city" validate:"required"`
	Street        string  `json:"street"`
	Building      string  `json:"building"`
	Floor         string  `json:"floor"`
	GoogleMapsURL *string `json:"googleMapsUrl" validate:"omitempty,url"`
}

// SubscriptionPayload is one bundle subscription inside a customer submit.
type SubscriptionPayload struct {
	BundleID string          `json:"bundleId" validate:"required"`
	Status   models.Status   `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Location LocationPayload `json:"location"`
}

// CustomerPayload creates or replaces a customer together with its subscriptions.
type CustomerPayload struct {
	FirstName           string                `json:"firstName" validate:"required"`
	LastName            string                `json:"lastName" validate:"required"`
	Email               string                `json:"email" validate:"required,email"`
	Phone               string                `json:"phone" validate:"required"`
	Status              models.Status         `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Location            LocationPayload       `json:"location"`
	BundleSubscriptions []SubscriptionPayload `json:"bundleSubscriptions" validate:"dive"`
}

// ToModel converts a location payload into its stored form.
func (l LocationPayload) ToModel() models.Location {
	loc := models.Location{
		Address:  l.Address,
		City:     l.City,
		Street:   l.Street,
		Building: l.Building,
		Floor:    l.Floor,
	}
	if l.GoogleMapsURL != nil && *l.GoogleMapsURL != "" {
		url := *l.GoogleMapsURL
		loc.GoogleMapsURL = &url
	}
	return loc
}
