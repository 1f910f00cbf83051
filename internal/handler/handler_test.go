package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/isp-backoffice-api/internal/middleware"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	"github.com/noah-isme/isp-backoffice-api/internal/service"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	"github.com/noah-isme/isp-backoffice-api/internal/table"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

type testEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, rec
}

func withAdmin(c *gin.Context, role models.AdminRole) {
	c.Set(middleware.ContextAdminKey, &models.JWTClaims{AdminID: "admin-1", Role: role})
}

func customerRecords(n int) []table.Record {
	out := make([]table.Record, 0, n)
	for i := 1; i <= n; i++ {
		status := "ACTIVE"
		if i%2 == 0 {
			status = "INACTIVE"
		}
		out = append(out, table.Record{
			"id":          fmt.Sprintf("c%02d", i),
			"name":        fmt.Sprintf("Customer %02d", i),
			"email":       fmt.Sprintf("c%02d@isp.example", i),
			"status":      status,
			"location":    map[string]interface{}{"city": "Beirut"},
			"bundleNames": []string{"Fiber 100"},
		})
	}
	return out
}

func staticView(resource string, def table.Definition, records []table.Record) *service.ResourceView {
	src := snapshot.New(resource, func(ctx context.Context) ([]table.Record, error) { return records, nil }, nil)
	return service.NewResourceView(src, def, nil, service.ViewConfig{}, nil)
}
