package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestJSONWithPaginationAndMeta(t *testing.T) {
	c, rec := newContext()
	JSON(c, http.StatusOK, []string{"a"}, &models.Pagination{Page: 1, PageSize: 10, TotalCount: 1, TotalPages: 1}, map[string]interface{}{"pages": []int{1}})

	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":["a"],"pagination":{"page":1,"pageSize":10,"totalCount":1,"totalPages":1},"meta":{"pages":[1]}}`, rec.Body.String())
}

func TestErrorRendersFieldErrors(t *testing.T) {
	c, rec := newContext()
	Error(c, appErrors.WithFields("invalid customer payload", []appErrors.FieldError{{Field: "email", Message: "email already exists"}}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"VALIDATION_ERROR","message":"invalid customer payload","status":400,"errors":[{"field":"email","message":"email already exists"}]}}`, rec.Body.String())
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newContext()
	Error(c, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestErrorWithData(t *testing.T) {
	c, rec := newContext()
	ErrorWithData(c, appErrors.ErrConflict, map[string]string{"id": "d1"})

	require.Equal(t, http.StatusConflict, rec.Code)
	var env struct {
		Data  map[string]string `json:"data"`
		Error *appErrors.Error  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "d1", env.Data["id"])
	assert.Equal(t, "CONFLICT", env.Error.Code)
}
