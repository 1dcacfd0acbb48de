package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartrecipe/backend/internal/service"
)

// respondError maps service errors onto the wire taxonomy. Unknown
// failures surface their raw message with a 500, matching the contract
// the client was built against.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrMissingUserID),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
}
