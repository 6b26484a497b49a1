package handlers

import (
	"net/http"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	news *services.NewsService
}

func NewNewsHandler() *NewsHandler {
	return &NewsHandler{news: services.GetNewsService()}
}

// Headlines handles GET /api/news. Always 200; a degraded fetch is reported
// through the status field, never as an error.
func (h *NewsHandler) Headlines(c *gin.Context) {
	c.JSON(http.StatusOK, h.news.Headlines())
}
