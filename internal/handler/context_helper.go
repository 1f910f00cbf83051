package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/isp-backoffice-api/internal/middleware"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
	"github.com/noah-isme/isp-backoffice-api/pkg/response"
)

// actorID returns the authenticated admin ID, writing a 401 when absent.
func actorID(c *gin.Context) (string, bool) {
	claims := middleware.Claims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.AdminID, true
}

func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func pageSize(c *gin.Context) int {
	size, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil {
		return 0
	}
	return size
}
