package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
	"github.com/noah-isme/isp-backoffice-api/pkg/response"
)

type refreshQueue interface {
	Enqueue(resource string) error
	Pending() int
}

// SnapshotHandler reports snapshot state and accepts manual retries.
type SnapshotHandler struct {
	registry *snapshot.Registry
	queue    refreshQueue
}

// NewSnapshotHandler creates a snapshot handler.
func NewSnapshotHandler(registry *snapshot.Registry, queue refreshQueue) *SnapshotHandler {
	return &SnapshotHandler{registry: registry, queue: queue}
}

// List godoc
// @Summary Snapshot states
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /snapshots [get]
func (h *SnapshotHandler) List(c *gin.Context) {
	resources := h.registry.Resources()
	states := make([]snapshot.State, 0, len(resources))
	for _, name := range resources {
		s, _ := h.registry.Get(name)
		states = append(states, s.State())
	}
	response.JSON(c, http.StatusOK, states, nil, gin.H{"pendingRefreshes": h.queue.Pending()})
}

// Get godoc
// @Summary Snapshot state
// @Description Loading flag, last error and freshness of one resource snapshot
// @Tags Snapshots
// @Produce json
// @Param resource path string true "customers, bundles or payments"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /snapshots/{resource} [get]
func (h *SnapshotHandler) Get(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("resource"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "snapshot not found"))
		return
	}
	response.JSON(c, http.StatusOK, s.State(), nil)
}

// Refresh godoc
// @Summary Retry snapshot load
// @Description Enqueue a reload of the resource snapshot
// @Tags Snapshots
// @Produce json
// @Param resource path string true "customers, bundles or payments"
// @Success 202 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /snapshots/{resource}/refresh [post]
func (h *SnapshotHandler) Refresh(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("resource"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "snapshot not found"))
		return
	}
	if err := h.queue.Enqueue(s.Resource()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrServiceUnavailable.Code, appErrors.ErrServiceUnavailable.Status, "refresh queue unavailable"))
		return
	}
	response.JSON(c, http.StatusAccepted, s.State(), nil)
}
