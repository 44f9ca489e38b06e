package app

import (
	"github.com/rootline-app/rootline-backend/internal/handlers"
	"github.com/rootline-app/rootline-backend/internal/logger"
)

type Handlers struct {
	Tree *handlers.TreeHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Tree: handlers.NewTreeHandler(log, services.Tree),
	}
}
