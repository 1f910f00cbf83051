package models

import (
	"time"

	"github.com/noah-isme/isp-backoffice-api/internal/table"
)

// Status is shared by customers, bundles and bundle subscriptions.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Location is a postal address with an optional map link.
type Location struct {
	Address       string  `db:"address" json:"address"`
	City          string  `db:"city" json:"city"`
	Street        string  `db:"street" json:"street"`
	Building      string  `db:"building" json:"building"`
	Floor         string  `db:"floor" json:"floor"`
	GoogleMapsURL *string `db:"google_maps_url" json:"googleMapsUrl"`
}

func (l Location) record() map[string]interface{} {
	var mapsURL interface{}
	if l.GoogleMapsURL != nil {
		mapsURL = *l.GoogleMapsURL
	}
	return map[string]interface{}{
		"address":       l.Address,
		"city":          l.City,
		"street":        l.Street,
		"building":      l.Building,
		"floor":         l.Floor,
		"googleMapsUrl": mapsURL,
	}
}

// Customer is an ISP subscriber.
type Customer struct {
	ID                  string               `db:"id" json:"id"`
	FirstName           string               `db:"first_name" json:"firstName"`
	LastName            string               `db:"last_name" json:"lastName"`
	Email               string               `db:"email" json:"email"`
	Phone               string               `db:"phone" json:"phone"`
	Status              Status               `db:"status" json:"status"`
	Location            Location             `db:"location" json:"location"`
	BundleSubscriptions []BundleSubscription `db:"-" json:"bundleSubscriptions"`
	CreatedAt           time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time            `db:"updated_at" json:"updatedAt"`
}

// BundleSubscription attaches a bundle to a customer at its own location.
type BundleSubscription struct {
	ID         string   `db:"id" json:"id"`
	CustomerID string   `db:"customer_id" json:"customerId"`
	BundleID   string   `db:"bundle_id" json:"bundleId"`
	BundleName string   `db:"bundle_name" json:"bundleName"`
	Status     Status   `db:"status" json:"status"`
	Location   Location `db:"location" json:"location"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// BundleNames lists the names of the subscribed bundles in subscription order.
func (c Customer) BundleNames() []string {
	names := make([]string, 0, len(c.BundleSubscriptions))
	for _, sub := range c.BundleSubscriptions {
		if sub.BundleName != "" {
			names = append(names, sub.BundleName)
		}
	}
	return names
}

// Record flattens the customer for the table engine.
func (c Customer) Record() table.Record {
	return table.Record{
		"id":          c.ID,
		"firstName":   c.FirstName,
		"lastName":    c.LastName,
		"name":        c.FullName(),
		"email":       c.Email,
		"phone":       c.Phone,
		"status":      string(c.Status),
		"location":    c.Location.record(),
		"bundleNames": c.BundleNames(),
		"createdAt":   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
