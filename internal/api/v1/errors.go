package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Matiiass08/FTE-App/internal/model"
)

// statusFor 工作流错误 -> HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNoResult):
		return http.StatusNotFound
	case errors.Is(err, model.ErrColumnNotFound),
		errors.Is(err, model.ErrNoRowsForYear),
		errors.Is(err, model.ErrInvalidParams):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrMissingInput),
		errors.Is(err, model.ErrFileUnreadable):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
