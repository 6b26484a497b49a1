package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/services"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

const incidentCacheTTL = 60 * time.Second

type IncidentHandler struct {
	incidents *services.IncidentService
	hub       *services.RealtimeHub
	cache     *utils.GlobalCache
}

func NewIncidentHandler() *IncidentHandler {
	return &IncidentHandler{
		incidents: services.GetIncidentService(),
		hub:       services.GetRealtimeHub(),
		cache:     utils.GetCache(),
	}
}

// List handles GET /api/incidents?page=N. Pages are cached briefly since the
// feed only changes when the ingestion job runs.
func (h *IncidentHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("incidents:page:%d", page)
	if cached := h.cache.Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	incidents, total, err := h.incidents.List(page)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"incidents":   incidents,
		"total":       total,
		"page":        page,
		"page_size":   services.IncidentPageSize,
		"type_counts": services.TypeCounts(incidents),
	}
	h.cache.Set(cacheKey, body, incidentCacheTTL)
	c.JSON(http.StatusOK, body)
}

// Types handles GET /api/incidents/types, the per-type counts for the legend.
func (h *IncidentHandler) Types(c *gin.Context) {
	if cached := h.cache.Get("incidents:types"); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	incidents, err := h.incidents.All()
	if err != nil {
		respondError(c, err)
		return
	}

	counts := services.TypeCounts(incidents)
	type typeEntry struct {
		services.TypeCount
		utils.Theme
	}
	entries := make([]typeEntry, 0, len(counts))
	for _, tc := range counts {
		entries = append(entries, typeEntry{tc, utils.ThemeFor(tc.IncidentType)})
	}

	body := gin.H{"types": entries}
	h.cache.Set("incidents:types", body, incidentCacheTTL)
	c.JSON(http.StatusOK, body)
}

// Detail handles GET /api/incidents/:slug, where slug is the report number
// with slashes written as dashes.
func (h *IncidentHandler) Detail(c *gin.Context) {
	incident, err := h.incidents.GetByReportSlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incident":       incident,
		"theme":          utils.ThemeFor(incident.IncidentType),
		"formatted_date": utils.FormatReportedDate(incident.DateReported),
	})
}

type incidentRef struct {
	IncidentID string `json:"incidentId"`
}

// View handles POST /api/incidents/view. Always +1 per call; the client is
// trusted not to spam it.
func (h *IncidentHandler) View(c *gin.Context) {
	var req incidentRef
	if err := c.ShouldBindJSON(&req); err != nil || req.IncidentID == "" {
		respondError(c, apperr.New(apperr.ValidationFailed, "incidentId is required"))
		return
	}

	count, err := h.incidents.IncrementView(req.IncidentID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.Event{Table: services.TableIncidents, Action: services.ActionUpdate})
	c.JSON(http.StatusOK, gin.H{"success": true, "view_count": count})
}

// Share handles POST /api/incidents/share.
func (h *IncidentHandler) Share(c *gin.Context) {
	var req incidentRef
	if err := c.ShouldBindJSON(&req); err != nil || req.IncidentID == "" {
		respondError(c, apperr.New(apperr.ValidationFailed, "incidentId is required"))
		return
	}

	count, err := h.incidents.IncrementShare(req.IncidentID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.Event{Table: services.TableIncidents, Action: services.ActionUpdate})
	c.JSON(http.StatusOK, gin.H{"success": true, "share_count": count})
}
