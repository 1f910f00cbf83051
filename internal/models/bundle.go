package models

import (
	"time"

	"github.com/noah-isme/isp-backoffice-api/internal/table"
)

// Bundle is a sellable internet service plan.
type Bundle struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	SpeedMbps   int       `db:"speed_mbps" json:"speedMbps"`
	Status      Status    `db:"status" json:"status"`
	Subscribers int       `db:"subscribers" json:"subscribers"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Record flattens the bundle for the table engine.
func (b Bundle) Record() table.Record {
	return table.Record{
		"id":          b.ID,
		"name":        b.Name,
		"description": b.Description,
		"price":       b.Price,
		"speedMbps":   b.SpeedMbps,
		"status":      string(b.Status),
		"subscribers": b.Subscribers,
		"createdAt":   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
