package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yoockh/yoointerview/internal/api/handlers"
	"github.com/yoockh/yoointerview/internal/api/middleware"
)

type Deps struct {
	Resume    *handlers.ResumeHandler
	Interview *handlers.InterviewHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/resume/upload", d.Resume.Upload)

	auth.POST("/interview/start", d.Interview.Start)
	auth.POST("/interview/:session_id/response", d.Interview.Submit)
	auth.GET("/interview/:session_id/status", d.Interview.Status)
	auth.POST("/interview/:session_id/end", d.Interview.End)

	// WebSocket
	auth.GET("/ws/interview/:session_id", d.WS.InterviewWS)

	// Admin
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/stats", d.Interview.Stats)
}
