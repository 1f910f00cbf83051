package dto

import (
	"time"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
)

// PaymentPayload records a payment against a customer.
type PaymentPayload struct {
	CustomerID string               `json:"customerId" validate:"required"`
	Amount     *float64             `json:"amount" validate:"omitempty,gt=0"`
	Method     models.PaymentMethod `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	Status     models.PaymentStatus `json:"status" validate:"required,oneof=PAID PENDING FAILED REFUNDED"`
	Reference  string               `json:"reference"`
	PaidAt     *time.Time           `json:"paidAt"`
}
