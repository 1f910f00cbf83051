package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/isp-backoffice-api/internal/service"
	"github.com/noah-isme/isp-backoffice-api/internal/table"
	"github.com/noah-isme/isp-backoffice-api/pkg/response"
)

// tableView is the read side every resource service shares through service.ResourceView.
type tableView interface {
	Definition() table.Definition
	List(ctx context.Context, state table.ViewState, pageSize int) *service.ListResult
	Filters(ctx context.Context) []table.FilterConfig
	ViewRows(ctx context.Context, state table.ViewState) []table.Record
}

// viewEndpoints serves list, filter and export routes for one resource.
type viewEndpoints struct {
	resource string
	view     tableView
	exports  *service.ExportService
}

func (v viewEndpoints) list(c *gin.Context) {
	state := v.view.Definition().ParseQuery(c.Request.URL.Query())
	result := v.view.List(c.Request.Context(), state, pageSize(c))
	response.JSON(c, http.StatusOK, result.Rows, &result.Pagination, map[string]interface{}{
		"pages":    result.Pages,
		"view":     result.View,
		"snapshot": result.Snapshot,
	})
}

func (v viewEndpoints) filters(c *gin.Context) {
	response.JSON(c, http.StatusOK, v.view.Filters(c.Request.Context()), nil)
}

func (v viewEndpoints) export(c *gin.Context) {
	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	state := v.view.Definition().ParseQuery(c.Request.URL.Query())
	result, err := v.exports.Export(c.Request.Context(), v.resource, v.view, state, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Export-Rows", strconv.Itoa(result.Rows))
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
