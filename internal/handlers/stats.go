package handlers

import (
	"net/http"
	"time"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/services"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

const statsCacheTTL = 5 * time.Minute

type StatsHandler struct {
	incidents *services.IncidentService
	stats     *services.StatsService
	cache     *utils.GlobalCache
}

func NewStatsHandler() *StatsHandler {
	return &StatsHandler{
		incidents: services.GetIncidentService(),
		stats:     services.GetStatsService(),
		cache:     utils.GetCache(),
	}
}

// Overview handles GET /api/stats, the whole statistics page in one payload.
// Scores carry intentional noise, so the cache also keeps them stable while
// someone is looking at the page.
func (h *StatsHandler) Overview(c *gin.Context) {
	if cached := h.cache.Get("stats:overview"); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	incidents, err := h.incidents.All()
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"danger_index":     h.stats.DangerIndex(incidents),
		"sketchy_hours":    h.stats.SketchyHours(incidents),
		"party_foul_index": h.stats.PartyFoulIndex(incidents),
		"narc_rating":      h.stats.NarcRating(incidents),
		"snitch_rating":    h.stats.SnitchRating(incidents),
		"type_counts":      services.TypeCounts(incidents),
		"total_incidents":  len(incidents),
	}
	h.cache.Set("stats:overview", body, statsCacheTTL)
	c.JSON(http.StatusOK, body)
}
