// Package router sets up the HTTP routes for the Roamlog API server.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/roamlog/api/internal/http/handler"
	"github.com/roamlog/api/internal/http/middleware"
)

// NewRouter initializes and returns the main Gin engine with all routes.
func NewRouter(posts *handler.Handler, health *handler.HealthHandler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware(), middleware.RequestLogger(), middleware.Recovery())

	router.GET("/ping", handler.Health)
	router.GET("/ready", health.Ready)

	group := router.Group("/posts")
	{
		group.GET("/published", posts.ListPublished)
		group.GET("/tagged/:tag", posts.ListByTag)
		group.GET("/:slug", posts.GetBySlug)
		group.POST("", posts.Create)
		group.PUT("/:id", posts.Update)
		group.PUT("/:id/views", posts.IncrementViews)
	}
	return router
}
