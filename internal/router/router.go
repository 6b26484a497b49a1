package router

import (
	"github.com/brandonsaldan/ninerwatch-sub000/internal/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	incidentHandler := handlers.NewIncidentHandler()
	commentHandler := handlers.NewCommentHandler()
	newsHandler := handlers.NewNewsHandler()
	statsHandler := handlers.NewStatsHandler()
	realtimeHandler := handlers.NewRealtimeHandler()

	api := r.Group("/api")
	{
		api.GET("/incidents", incidentHandler.List)          // paged incident feed
		api.GET("/incidents/types", incidentHandler.Types)   // per-type counts for the legend
		api.GET("/incidents/:slug", incidentHandler.Detail)  // one incident by report-number slug
		api.POST("/incidents/view", incidentHandler.View)    // bump view counter
		api.POST("/incidents/share", incidentHandler.Share)  // bump share counter

		api.GET("/comments", commentHandler.List) // ?incident_id=...
		api.POST("/comments", commentHandler.Create)
		api.POST("/comments/vote", commentHandler.Vote)

		api.GET("/news", newsHandler.Headlines) // safety headline ticker
		api.GET("/stats", statsHandler.Overview)
	}

	r.GET("/ws", realtimeHandler.Subscribe) // change event stream
}
