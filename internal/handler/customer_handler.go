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

type customerService interface {
	tableView
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error)
	Update(ctx context.Context, id string, payload dto.CustomerPayload, actorID string, meta models.RequestMeta) (*models.Customer, error)
	Delete(ctx context.Context, id string, actorID string, meta models.RequestMeta) error
}

// CustomerHandler exposes customer endpoints.
type CustomerHandler struct {
	service customerService
	views   viewEndpoints
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(svc customerService, exports *service.ExportService) *CustomerHandler {
	return &CustomerHandler{service: svc, views: viewEndpoints{resource: snapshot.Customers, view: svc, exports: exports}}
}

// List godoc
// @Summary List customers
// @Description Search, filter, sort and page the customer snapshot
// @Tags Customers
// @Produce json
// @Param search query string false "Case-insensitive search across every field"
// @Param filter[status] query []string false "Status facet" collectionFormat(multi)
// @Param filter[city] query []string false "City facet" collectionFormat(multi)
// @Param filter[bundle] query []string false "Bundle name facet" collectionFormat(multi)
// @Param sort query string false "Sort column key"
// @Param dir query string false "asc or desc"
// @Param page query int false "Page number"
// @Param pageSize query int false "Rows per page"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	h.views.list(c)
}

// Filters godoc
// @Summary Customer filter options
// @Description Distinct facet values across all customers
// @Tags Customers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /customers/filters [get]
func (h *CustomerHandler) Filters(c *gin.Context) {
	h.views.filters(c)
}

// Export godoc
// @Summary Export customers
// @Description Download the filtered and sorted customer view as CSV or PDF
// @Tags Customers
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /customers/export [get]
func (h *CustomerHandler) Export(c *gin.Context) {
	h.views.export(c)
}

// Get godoc
// @Summary Get customer
// @Description Customer detail with bundle subscriptions
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, customer, nil)
}

// Create godoc
// @Summary Create customer
// @Description Create a customer together with its bundle subscriptions
// @Tags Customers
// @Accept json
// @Produce json
// @Param payload body dto.CustomerPayload true "Customer payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CustomerPayload
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.service.Create(c.Request.Context(), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, customer)
}

// Update godoc
// @Summary Update customer
// @Description Replace a customer and its full subscription list
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param payload body dto.CustomerPayload true "Customer payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CustomerPayload
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, customer, nil)
}

// Delete godoc
// @Summary Delete customer
// @Description Soft delete a customer
// @Tags Customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
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
