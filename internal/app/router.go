package app

import (
	"github.com/gin-gonic/gin"

	"github.com/rootline-app/rootline-backend/internal/server"
)

func wireRouter(handlers Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		TreeHandler: handlers.Tree,
	})
}
