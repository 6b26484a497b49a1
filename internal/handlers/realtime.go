package handlers

import (
	"log"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type RealtimeHandler struct {
	hub *services.RealtimeHub
}

func NewRealtimeHandler() *RealtimeHandler {
	return &RealtimeHandler{hub: services.GetRealtimeHub()}
}

// Subscribe handles GET /ws?table=...&incident_id=..., upgrading to a
// websocket that streams change events for the named table.
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	table := c.Query("table")
	if !services.ValidTable(table) {
		respondError(c, apperr.New(apperr.ValidationFailed, "unknown table"))
		return
	}

	if err := h.hub.Subscribe(c.Writer, c.Request, table, c.Query("incident_id")); err != nil {
		// Upgrade already wrote the handshake failure to the client.
		log.Printf("Websocket upgrade failed: %v", err)
	}
}
