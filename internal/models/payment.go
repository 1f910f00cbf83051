package models

import (
	"time"

	"github.com/noah-isme/isp-backoffice-api/internal/table"
)

// PaymentStatus tracks settlement of a payment.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentPending  PaymentStatus = "PENDING"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// Payment is a customer payment. Amount is nil while a pending payment has no settled value.
type Payment struct {
	ID           string        `db:"id" json:"id"`
	CustomerID   string        `db:"customer_id" json:"customerId"`
	CustomerName string        `db:"customer_name" json:"customerName"`
	Amount       *float64      `db:"amount" json:"amount"`
	Method       PaymentMethod `db:"method" json:"method"`
	Status       PaymentStatus `db:"status" json:"status"`
	Reference    string        `db:"reference" json:"reference"`
	PaidAt       *time.Time    `db:"paid_at" json:"paidAt,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
}

// Record flattens the payment for the table engine.
func (p Payment) Record() table.Record {
	var amount, paidAt interface{}
	if p.Amount != nil {
		amount = *p.Amount
	}
	if p.PaidAt != nil {
		paidAt = p.PaidAt.UTC().Format(time.RFC3339)
	}
	return table.Record{
		"id":           p.ID,
		"customerId":   p.CustomerID,
		"customerName": p.CustomerName,
		"amount":       amount,
		"method":       string(p.Method),
		"status":       string(p.Status),
		"reference":    p.Reference,
		"paidAt":       paidAt,
		"createdAt":    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
