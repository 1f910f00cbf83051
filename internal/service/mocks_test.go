package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	"github.com/noah-isme/isp-backoffice-api/internal/table"
)

type mockCustomerRepo struct {
	customers map[string]*models.Customer
	createErr error
	seq       int
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	if c, ok := m.customers[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	for _, c := range m.customers {
		if strings.EqualFold(c.Email, email) {
			copy := *c
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.customers == nil {
		m.customers = map[string]*models.Customer{}
	}
	m.seq++
	customer.ID = fmt.Sprintf("c-%d", m.seq)
	copy := *customer
	m.customers[customer.ID] = &copy
	return nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	copy := *customer
	m.customers[customer.ID] = &copy
	return nil
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id string) error {
	delete(m.customers, id)
	return nil
}

type mockBundleRepo struct {
	bundles map[string]*models.Bundle
	active  map[string]int
}

func (m *mockBundleRepo) FindByID(ctx context.Context, id string) (*models.Bundle, error) {
	if b, ok := m.bundles[id]; ok {
		copy := *b
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockBundleRepo) Create(ctx context.Context, bundle *models.Bundle) error {
	if m.bundles == nil {
		m.bundles = map[string]*models.Bundle{}
	}
	bundle.ID = fmt.Sprintf("b-%d", len(m.bundles)+1)
	copy := *bundle
	m.bundles[bundle.ID] = &copy
	return nil
}

func (m *mockBundleRepo) Update(ctx context.Context, bundle *models.Bundle) error {
	copy := *bundle
	m.bundles[bundle.ID] = &copy
	return nil
}

func (m *mockBundleRepo) Delete(ctx context.Context, id string) error {
	delete(m.bundles, id)
	return nil
}

func (m *mockBundleRepo) CountActiveSubscriptions(ctx context.Context, id string) (int, error) {
	return m.active[id], nil
}

func (m *mockBundleRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	found := map[string]bool{}
	for _, id := range ids {
		if _, ok := m.bundles[id]; ok {
			found[id] = true
		}
	}
	return found, nil
}

type mockPaymentRepo struct {
	payments map[string]*models.Payment
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	if p, ok := m.payments[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if m.payments == nil {
		m.payments = map[string]*models.Payment{}
	}
	payment.ID = fmt.Sprintf("p-%d", len(m.payments)+1)
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

type mockAuditRepo struct {
	logs []*models.AuditLog
}

func (m *mockAuditRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockAuditRepo) actions() []string {
	out := make([]string, 0, len(m.logs))
	for _, l := range m.logs {
		out = append(out, l.Action)
	}
	return out
}

type mockRefresher struct {
	mu        sync.Mutex
	resources []string
}

func (m *mockRefresher) Enqueue(resource string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = append(m.resources, resource)
	return nil
}

func staticSnapshot(resource string, records []table.Record) *snapshot.Snapshot {
	return snapshot.New(resource, func(ctx context.Context) ([]table.Record, error) {
		return records, nil
	}, nil)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
