package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

func newBundleService() (*BundleService, *mockBundleRepo, *mockRefresher) {
	repo := &mockBundleRepo{
		bundles: map[string]*models.Bundle{"b1": {ID: "b1", Name: "Fiber 100", Price: 49, SpeedMbps: 100, Status: models.StatusActive}},
		active:  map[string]int{"b1": 2},
	}
	refresher := &mockRefresher{}
	view := NewResourceView(staticSnapshot(snapshot.Bundles, nil), BundleTable, nil, ViewConfig{}, nil)
	return NewBundleService(repo, &mockAuditRepo{}, view, refresher, nil, zap.NewNop()), repo, refresher
}

func TestBundleCreateValidates(t *testing.T) {
	svc, _, _ := newBundleService()

	_, err := svc.Create(context.Background(), dto.BundlePayload{Name: "", SpeedMbps: 0, Status: "PAUSED"}, "admin-1", models.RequestMeta{})
	appErr := requireAppError(t, err, appErrors.ErrValidation.Code)
	fields := fieldMap(appErr.Details)
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "speedMbps must be greater than 0", fields["speedMbps"])
	assert.Equal(t, "status must be one of: ACTIVE INACTIVE", fields["status"])
}

func TestBundleUpdateRefreshesCustomers(t *testing.T) {
	svc, repo, refresher := newBundleService()

	bundle, err := svc.Update(context.Background(), "b1", dto.BundlePayload{Name: "Fiber 200", Price: 79, SpeedMbps: 200, Status: models.StatusActive}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "Fiber 200", bundle.Name)
	assert.Equal(t, 200, repo.bundles["b1"].SpeedMbps)
	assert.Equal(t, []string{snapshot.Bundles, snapshot.Customers}, refresher.resources)
}

func TestBundleDeleteInUse(t *testing.T) {
	svc, repo, _ := newBundleService()

	err := svc.Delete(context.Background(), "b1", "admin-1", models.RequestMeta{})
	requireAppError(t, err, appErrors.ErrConflict.Code)

	repo.active["b1"] = 0
	require.NoError(t, svc.Delete(context.Background(), "b1", "admin-1", models.RequestMeta{}))
	assert.Empty(t, repo.bundles)
}
