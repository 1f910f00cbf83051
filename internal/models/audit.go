package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionLogin          = "LOGIN"
	AuditActionCustomerCreate = "CUSTOMER_CREATE"
	AuditActionCustomerUpdate = "CUSTOMER_UPDATE"
	AuditActionCustomerDelete = "CUSTOMER_DELETE"
	AuditActionBundleCreate   = "BUNDLE_CREATE"
	AuditActionBundleUpdate   = "BUNDLE_UPDATE"
	AuditActionBundleDelete   = "BUNDLE_DELETE"
	AuditActionPaymentCreate  = "PAYMENT_CREATE"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	AdminID    *string   `db:"admin_id" json:"adminId,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resourceId,omitempty"`
	OldValues  []byte    `db:"old_values" json:"oldValues,omitempty"`
	NewValues  []byte    `db:"new_values" json:"newValues,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ipAddress"`
	UserAgent  string    `db:"user_agent" json:"userAgent"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
