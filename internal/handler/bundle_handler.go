package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/service"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	"github.com/noah-isme/isp-backoffice-api/pkg/response"
)

type bundleService interface {
	tableView
	Get(ctx context.Context, id string) (*models.Bundle, error)
	Create(ctx context.Context, payload dto.BundlePayload, actorID string, meta models.RequestMeta) (*models.Bundle, error)
	Update(ctx context.Context, id string, payload dto.BundlePayload, actorID string, meta models.RequestMeta) (*models.Bundle, error)
	Delete(ctx context.Context, id string, actorID string, meta models.RequestMeta) error
}

// BundleHandler exposes bundle catalogue endpoints.
type BundleHandler struct {
	service bundleService
	views   viewEndpoints
}

// NewBundleHandler creates a bundle handler.
func NewBundleHandler(svc bundleService, exports *service.ExportService) *BundleHandler {
	return &BundleHandler{service: svc, views: viewEndpoints{resource: snapshot.Bundles, view: svc, exports: exports}}
}

// List godoc
// @Summary List bundles
// @Tags Bundles
// @Produce json
// @Param search query string false "Search term"
// @Param filter[status] query []string false "Status facet" collectionFormat(multi)
// @Param sort query string false "Sort column key"
// @Param dir query string false "asc or desc"
// @Param page query int false "Page number"
// @Param pageSize query int false "Rows per page"
// @Success 200 {object} response.Envelope
// @Router /bundles [get]
func (h *BundleHandler) List(c *gin.Context) {
	h.views.list(c)
}

// Filters godoc
// @Summary Bundle filter options
// @Tags Bundles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bundles/filters [get]
func (h *BundleHandler) Filters(c *gin.Context) {
	h.views.filters(c)
}

// Export godoc
// @Summary Export bundles
// @Tags Bundles
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /bundles/export [get]
func (h *BundleHandler) Export(c *gin.Context) {
	h.views.export(c)
}

// Get godoc
// @Summary Get bundle
// @Tags Bundles
// @Produce json
// @Param id path string true "Bundle ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bundles/{id} [get]
func (h *BundleHandler) Get(c *gin.Context) {
	bundle, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle, nil)
}

// Create godoc
// @Summary Create bundle
// @Tags Bundles
// @Accept json
// @Produce json
// @Param payload body dto.BundlePayload true "Bundle payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bundles [post]
func (h *BundleHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.BundlePayload
	if !bindJSON(c, &req) {
		return
	}
	bundle, err := h.service.Create(c.Request.Context(), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bundle)
}

// Update godoc
// @Summary Update bundle
// @Tags Bundles
// @Accept json
// @Produce json
// @Param id path string true "Bundle ID"
// @Param payload body dto.BundlePayload true "Bundle payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bundles/{id} [put]
func (h *BundleHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.BundlePayload
	if !bindJSON(c, &req) {
		return
	}
	bundle, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle, nil)
}

// Delete godoc
// @Summary Delete bundle
// @Description Soft delete a bundle without active subscriptions
// @Tags Bundles
// @Param id path string true "Bundle ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /bundles/{id} [delete]
func (h *BundleHandler) Delete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), actor, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
