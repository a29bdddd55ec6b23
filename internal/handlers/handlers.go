package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurumbay/aurumbay/internal/models"
)

// httpStatus maps the core's typed failure codes onto HTTP statuses.
func httpStatus(err error) int {
	switch models.CodeOf(err) {
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeDuplicate, models.CodeAlreadyProcessed, models.CodeAlreadyUsed:
		return http.StatusConflict
	case models.CodeLimitReached:
		return http.StatusPaymentRequired
	case models.CodeForbidden:
		return http.StatusForbidden
	case models.CodeInvalidCredential:
		return http.StatusUnauthorized
	case models.CodeExpired, models.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), models.ErrorResponse(err))
}
