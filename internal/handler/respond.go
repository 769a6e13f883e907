package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lawdesk/internal/apperr"
	"lawdesk/pkg/logger"
	"lawdesk/pkg/response"
)

// respondError translates a service error into the API envelope. Known
// application errors map to their status and message key; anything else is a
// logged 500 with a generic key so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(apperr.Status(err), response.Error(apperr.Status(err), appErr.Key))
		return
	}

	logger.Get().Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "INTERNAL_ERROR"))
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorWithDetail(http.StatusBadRequest, "VALIDATION_ERROR", err.Error()))
}

// pathID parses the :id path parameter. A non-numeric id is a validation
// error, not a routing miss.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindError(c, err)
		return 0, false
	}
	return uint(id), true
}
