// Package snapshot keeps in-memory copies of the back-office collections that
// list views are computed from.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/isp-backoffice-api/internal/table"
)

// Resource names.
const (
	Customers = "customers"
	Bundles   = "bundles"
	Payments  = "payments"
)

// Loader fetches the full collection for one resource.
type Loader func(ctx context.Context) ([]table.Record, error)

// Observer is notified after every refresh attempt.
type Observer func(resource string, duration time.Duration, err error)

// State describes a snapshot without its records.
type State struct {
	Resource    string     `json:"resource"`
	Loading     bool       `json:"loading"`
	Error       *string    `json:"error"`
	Count       int        `json:"count"`
	RefreshedAt *time.Time `json:"refreshedAt,omitempty"`
}

// Snapshot is the last successfully loaded collection of one resource.
// Concurrent refreshes are not coalesced; the last one to finish wins.
type Snapshot struct {
	resource string
	loader   Loader
	observer Observer

	mu          sync.RWMutex
	records     []table.Record
	loading     int
	lastErr     error
	refreshedAt time.Time
}

// New builds an empty snapshot.
func New(resource string, loader Loader, observer Observer) *Snapshot {
	return &Snapshot{resource: resource, loader: loader, observer: observer}
}

// Resource returns the snapshot name.
func (s *Snapshot) Resource() string {
	return s.resource
}

// Records returns the current collection. Callers must not mutate the records.
func (s *Snapshot) Records() []table.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// State reports loading, error and freshness.
func (s *Snapshot) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := State{Resource: s.resource, Loading: s.loading > 0, Count: len(s.records)}
	if s.lastErr != nil {
		msg := s.lastErr.Error()
		state.Error = &msg
	}
	if !s.refreshedAt.IsZero() {
		at := s.refreshedAt
		state.RefreshedAt = &at
	}
	return state
}

// Refresh reloads the collection. On failure the previous records are kept and the error is recorded.
func (s *Snapshot) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()

	start := time.Now()
	records, err := s.loader(ctx)
	duration := time.Since(start)

	s.mu.Lock()
	s.loading--
	if err != nil {
		s.lastErr = err
	} else {
		s.records = records
		s.lastErr = nil
		s.refreshedAt = time.Now().UTC()
	}
	s.mu.Unlock()

	if s.observer != nil {
		s.observer(s.resource, duration, err)
	}
	if err != nil {
		return fmt.Errorf("refresh %s: %w", s.resource, err)
	}
	return nil
}

// Registry indexes snapshots by resource.
type Registry struct {
	snapshots map[string]*Snapshot
	order     []string
}

// NewRegistry builds a registry of the given snapshots.
func NewRegistry(snapshots ...*Snapshot) *Registry {
	r := &Registry{snapshots: make(map[string]*Snapshot, len(snapshots))}
	for _, s := range snapshots {
		r.snapshots[s.resource] = s
		r.order = append(r.order, s.resource)
	}
	return r
}

// Get returns the snapshot of resource.
func (r *Registry) Get(resource string) (*Snapshot, bool) {
	s, ok := r.snapshots[resource]
	return s, ok
}

// Resources lists registered resources in registration order.
func (r *Registry) Resources() []string {
	return append([]string(nil), r.order...)
}

// RefreshAll refreshes every snapshot sequentially and returns the first error.
func (r *Registry) RefreshAll(ctx context.Context) error {
	var first error
	for _, name := range r.order {
		if err := r.snapshots[name].Refresh(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
