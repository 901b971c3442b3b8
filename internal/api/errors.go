package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"room-lease-backend/internal/lease"
	"room-lease-backend/internal/store"
)

// mapStoreErr translates a raw store error into the domain taxonomy for
// handlers that read the store directly.
func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%v: %w", err, lease.ErrNotFound)
	}
	return err
}

// abortWithError maps a lease error to its HTTP status. Unrecognized errors
// surface as 500 without leaking internals.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lease.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, lease.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lease.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, lease.ErrInvalidState), errors.Is(err, lease.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
