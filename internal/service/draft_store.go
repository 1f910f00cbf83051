package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/noah-isme/isp-backoffice-api/internal/subscription"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

const draftKeyPrefix = "drafts:"

// Draft is a server-side subscription editing session for one customer form.
type Draft struct {
	ID         string               `json:"id"`
	OwnerID    string               `json:"ownerId"`
	CustomerID string               `json:"customerId,omitempty"`
	Editor     *subscription.Editor `json:"editor"`
	FormErrors map[string]string    `json:"formErrors,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
	ExpiresAt  time.Time            `json:"expiresAt"`
}

// DraftStore persists drafts. Get returns appErrors.ErrNotFound for unknown or expired drafts.
type DraftStore interface {
	Get(ctx context.Context, id string) (*Draft, error)
	Save(ctx context.Context, draft *Draft, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// CacheDraftStore keeps drafts in Redis through the cache service.
type CacheDraftStore struct {
	cache *CacheService
}

// NewCacheDraftStore builds a Redis-backed draft store.
func NewCacheDraftStore(cache *CacheService) *CacheDraftStore {
	return &CacheDraftStore{cache: cache}
}

// Get loads a draft.
func (s *CacheDraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	var draft Draft
	hit, err := s.cache.Get(ctx, draftKeyPrefix+id, &draft)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrServiceUnavailable.Code, appErrors.ErrServiceUnavailable.Status, "draft store unavailable")
	}
	if !hit || draft.Editor == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
	}
	return &draft, nil
}

// Save stores a draft for ttl.
func (s *CacheDraftStore) Save(ctx context.Context, draft *Draft, ttl time.Duration) error {
	if err := s.cache.Set(ctx, draftKeyPrefix+draft.ID, draft, ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrServiceUnavailable.Code, appErrors.ErrServiceUnavailable.Status, "draft store unavailable")
	}
	return nil
}

// Delete removes a draft.
func (s *CacheDraftStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, draftKeyPrefix+id)
}

// MemoryDraftStore keeps drafts in a bounded in-process LRU; used when Redis is
// disabled. Every Save restarts the store-wide ttl, so the ttl passed to Save is ignored.
type MemoryDraftStore struct {
	drafts *expirable.LRU[string, Draft]
}

// NewMemoryDraftStore builds an empty store holding at most size drafts for ttl each.
func NewMemoryDraftStore(size int, ttl time.Duration) *MemoryDraftStore {
	if size <= 0 {
		size = 1024
	}
	return &MemoryDraftStore{drafts: expirable.NewLRU[string, Draft](size, nil, ttl)}
}

// Get loads a copy of a draft.
func (s *MemoryDraftStore) Get(_ context.Context, id string) (*Draft, error) {
	stored, ok := s.drafts.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
	}
	draft := cloneDraft(stored)
	return &draft, nil
}

// Save stores a copy of draft.
func (s *MemoryDraftStore) Save(_ context.Context, draft *Draft, _ time.Duration) error {
	s.drafts.Add(draft.ID, cloneDraft(*draft))
	return nil
}

// Delete removes a draft.
func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.drafts.Remove(id)
	return nil
}

func cloneDraft(in Draft) Draft {
	out := in
	if in.Editor != nil {
		editor := *in.Editor
		editor.Entries = append([]subscription.Entry(nil), in.Editor.Entries...)
		editor.Errors = copyStringMap(in.Editor.Errors)
		out.Editor = &editor
	}
	out.FormErrors = copyStringMap(in.FormErrors)
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
