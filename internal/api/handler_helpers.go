package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UK-Mindset/mind-set/internal"
	"github.com/UK-Mindset/mind-set/internal/response"
)

// StatusOf maps service error kinds to HTTP statuses. Anything outside the
// taxonomy is a store-layer failure and surfaces as 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, internal.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, internal.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, internal.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func HandleError(c *gin.Context, logger internal.Logger, err error, msg string) {
	requestID := c.GetString("request_id")
	status := StatusOf(err)
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)

	var resp response.APIResponse
	switch status {
	case http.StatusBadRequest:
		resp = response.BadRequest(msg + ": " + err.Error())
	case http.StatusForbidden:
		resp = response.Forbidden(msg + ": " + err.Error())
	case http.StatusNotFound:
		resp = response.NotFound(msg + ": " + err.Error())
	case http.StatusInternalServerError:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, status int, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(status, response.Success(data, meta))
}
