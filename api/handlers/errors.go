package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahinestrog/bookorders/internal/apperr"
)

func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	msg := err.Error()
	switch kind {
	case apperr.Unauthenticated:
		status = http.StatusUnauthorized
	case apperr.InvalidInput:
		status = http.StatusBadRequest
	case apperr.EmptyCart:
		status = http.StatusUnprocessableEntity
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.StoreFailure:
		// backend detail stays in the log, not the response
		status = http.StatusBadGateway
		msg = "storage unavailable"
	}
	c.JSON(status, gin.H{"error": gin.H{"kind": kind.String(), "message": msg}})
}
