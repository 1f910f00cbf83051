package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/service"
	"github.com/noah-isme/isp-backoffice-api/pkg/response"
)

type draftService interface {
	Create(ctx context.Context, actorID string, req dto.CreateDraftRequest) (*service.Draft, error)
	Get(ctx context.Context, id, actorID string) (*service.Draft, error)
	Discard(ctx context.Context, id, actorID string) error
	AddEntry(ctx context.Context, id, actorID string, req dto.AddEntryRequest) (*service.Draft, error)
	UpdateField(ctx context.Context, id, actorID, tempID string, req dto.UpdateFieldRequest) (*service.Draft, error)
	SetStatus(ctx context.Context, id, actorID, tempID string, req dto.SetStatusRequest) (*service.Draft, error)
	CopyPrimaryLocation(ctx context.Context, id, actorID, tempID string, req dto.CopyLocationRequest) (*service.Draft, error)
	ToggleExpanded(ctx context.Context, id, actorID, tempID string) (*service.Draft, error)
	RequestRemoval(ctx context.Context, id, actorID, tempID string) (*service.Draft, error)
	ConfirmRemoval(ctx context.Context, id, actorID string) (*service.Draft, error)
	CancelRemoval(ctx context.Context, id, actorID string) (*service.Draft, error)
	Validate(ctx context.Context, id, actorID string) (*dto.ValidationResult, *service.Draft, error)
	Submit(ctx context.Context, id, actorID string, req dto.SubmitDraftRequest, meta models.RequestMeta) (*models.Customer, *service.Draft, error)
}

// DraftHandler drives the bundle subscription editor one command per request.
type DraftHandler struct {
	service draftService
}

// NewDraftHandler creates a draft handler.
func NewDraftHandler(svc draftService) *DraftHandler {
	return &DraftHandler{service: svc}
}

func (h *DraftHandler) respond(c *gin.Context, status int, draft *service.Draft, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, status, draft, nil)
}

// Create godoc
// @Summary Open draft
// @Description Start a subscription editing session, loading an existing customer's subscriptions when customerId is set
// @Tags Drafts
// @Accept json
// @Produce json
// @Param payload body dto.CreateDraftRequest false "Draft payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /drafts [post]
func (h *DraftHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CreateDraftRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	draft, err := h.service.Create(c.Request.Context(), actor, req)
	h.respond(c, http.StatusCreated, draft, err)
}

// Get godoc
// @Summary Get draft
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	draft, err := h.service.Get(c.Request.Context(), c.Param("id"), actor)
	h.respond(c, http.StatusOK, draft, err)
}

// Discard godoc
// @Summary Discard draft
// @Tags Drafts
// @Param id path string true "Draft ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /drafts/{id} [delete]
func (h *DraftHandler) Discard(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.service.Discard(c.Request.Context(), c.Param("id"), actor); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddEntry godoc
// @Summary Add subscription entry
// @Description Append an ACTIVE entry with an empty location; rejected with 422 at the entry limit
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.AddEntryRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /drafts/{id}/entries [post]
func (h *DraftHandler) AddEntry(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.AddEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.service.AddEntry(c.Request.Context(), c.Param("id"), actor, req)
	h.respond(c, http.StatusCreated, draft, err)
}

// UpdateField godoc
// @Summary Update entry field
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param tempId path string true "Entry temp ID"
// @Param payload body dto.UpdateFieldRequest true "Field payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /drafts/{id}/entries/{tempId} [patch]
func (h *DraftHandler) UpdateField(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.UpdateFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.service.UpdateField(c.Request.Context(), c.Param("id"), actor, c.Param("tempId"), req)
	h.respond(c, http.StatusOK, draft, err)
}

// SetStatus godoc
// @Summary Set entry status
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param tempId path string true "Entry temp ID"
// @Param payload body dto.SetStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/entries/{tempId}/status [put]
func (h *DraftHandler) SetStatus(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.SetStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), actor, c.Param("tempId"), req)
	h.respond(c, http.StatusOK, draft, err)
}

// CopyPrimaryLocation godoc
// @Summary Copy primary location
// @Description Copy the form's primary location into the entry and clear its errors
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param tempId path string true "Entry temp ID"
// @Param payload body dto.CopyLocationRequest true "Primary location"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/entries/{tempId}/copy-primary [post]
func (h *DraftHandler) CopyPrimaryLocation(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CopyLocationRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.service.CopyPrimaryLocation(c.Request.Context(), c.Param("id"), actor, c.Param("tempId"), req)
	h.respond(c, http.StatusOK, draft, err)
}

// ToggleExpanded godoc
// @Summary Toggle entry expansion
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param tempId path string true "Entry temp ID"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/entries/{tempId}/toggle [post]
func (h *DraftHandler) ToggleExpanded(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	draft, err := h.service.ToggleExpanded(c.Request.Context(), c.Param("id"), actor, c.Param("tempId"))
	h.respond(c, http.StatusOK, draft, err)
}

// RequestRemoval godoc
// @Summary Stage entry removal
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param tempId path string true "Entry temp ID"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/entries/{tempId}/removal [post]
func (h *DraftHandler) RequestRemoval(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	draft, err := h.service.RequestRemoval(c.Request.Context(), c.Param("id"), actor, c.Param("tempId"))
	h.respond(c, http.StatusOK, draft, err)
}

// ConfirmRemoval godoc
// @Summary Confirm staged removal
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /drafts/{id}/removal/confirm [post]
func (h *DraftHandler) ConfirmRemoval(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	draft, err := h.service.ConfirmRemoval(c.Request.Context(), c.Param("id"), actor)
	h.respond(c, http.StatusOK, draft, err)
}

// CancelRemoval godoc
// @Summary Cancel staged removal
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/removal [delete]
func (h *DraftHandler) CancelRemoval(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	draft, err := h.service.CancelRemoval(c.Request.Context(), c.Param("id"), actor)
	h.respond(c, http.StatusOK, draft, err)
}

// Validate godoc
// @Summary Validate entries
// @Description Check every entry for address and city; errors are stored on the draft
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/validate [post]
func (h *DraftHandler) Validate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	result, draft, err := h.service.Validate(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, map[string]interface{}{"draft": draft})
}

// Submit godoc
// @Summary Submit draft
// @Description Create or update the customer with the draft's subscriptions. On failure the draft, with mapped field errors, is returned alongside the error.
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.SubmitDraftRequest true "Customer fields"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.SubmitDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	existing, err := h.service.Get(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	customer, draft, err := h.service.Submit(c.Request.Context(), existing.ID, actor, req, requestMeta(c))
	if err != nil {
		if draft != nil {
			response.ErrorWithData(c, err, draft)
			return
		}
		response.Error(c, err)
		return
	}
	if existing.CustomerID != "" {
		response.JSON(c, http.StatusOK, customer, nil)
		return
	}
	response.Created(c, customer)
}
