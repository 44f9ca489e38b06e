package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rootline-app/rootline-backend/internal/handlers"
)

type RouterConfig struct {
	TreeHandler *handlers.TreeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/trees", cfg.TreeHandler.CreateTree)
		api.GET("/trees", cfg.TreeHandler.ListTrees)
		api.GET("/trees/:id", cfg.TreeHandler.GetTree)
		api.DELETE("/trees/:id", cfg.TreeHandler.DeleteTree)
		api.POST("/trees/:id/gedcom/import", cfg.TreeHandler.ImportGedcom)
		api.GET("/trees/:id/gedcom/export", cfg.TreeHandler.ExportGedcom)
		api.GET("/trees/:id/imports", cfg.TreeHandler.ListImports)
		api.POST("/trees/:id/ancestry/rebuild", cfg.TreeHandler.RebuildAncestry)
	}

	return router
}
