package dto

import "github.com/noah-isme/isp-backoffice-api/internal/models"

// BundlePayload creates or replaces a bundle.
type BundlePayload struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Price       float64       `json:"price" validate:"gte=0"`
	SpeedMbps   int           `json:"speedMbps" validate:"gt=0"`
	Status      models.Status `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}
