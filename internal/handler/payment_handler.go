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

type paymentService interface {
	tableView
	Get(ctx context.Context, id string) (*models.Payment, error)
	Create(ctx context.Context, payload dto.PaymentPayload, actorID string, meta models.RequestMeta) (*models.Payment, error)
}

// PaymentHandler exposes payment endpoints.
type PaymentHandler struct {
	service paymentService
	views   viewEndpoints
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(svc paymentService, exports *service.ExportService) *PaymentHandler {
	return &PaymentHandler{service: svc, views: viewEndpoints{resource: snapshot.Payments, view: svc, exports: exports}}
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param search query string false "Search term"
// @Param filter[status] query []string false "Status facet" collectionFormat(multi)
// @Param filter[method] query []string false "Method facet" collectionFormat(multi)
// @Param sort query string false "Sort column key"
// @Param dir query string false "asc or desc"
// @Param page query int false "Page number"
// @Param pageSize query int false "Rows per page"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	h.views.list(c)
}

// Filters godoc
// @Summary Payment filter options
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/filters [get]
func (h *PaymentHandler) Filters(c *gin.Context) {
	h.views.filters(c)
}

// Export godoc
// @Summary Export payments
// @Tags Payments
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /payments/export [get]
func (h *PaymentHandler) Export(c *gin.Context) {
	h.views.export(c)
}

// Get godoc
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// Create godoc
// @Summary Record payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body dto.PaymentPayload true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.PaymentPayload
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.service.Create(c.Request.Context(), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}
