package handlers

import (
	"log"
	"net/http"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body for err at its mapped status.
// Upstream failures log the cause and hide it from the client.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
