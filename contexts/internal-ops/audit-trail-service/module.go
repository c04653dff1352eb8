package audittrailservice

import (
	"log/slog"

	"crossbank/contexts/internal-ops/audit-trail-service/adapters/memory"
	"crossbank/contexts/internal-ops/audit-trail-service/application"
	"crossbank/contexts/internal-ops/audit-trail-service/ports"
)

type Module struct {
	Service  application.Service
	Consumer application.Consumer
	Store    *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Subscriber ports.Subscriber
	Clock      ports.Clock
	Topics     []string
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Service: service,
		Consumer: application.Consumer{
			Subscriber: deps.Subscriber,
			Service:    service,
			Topics:     deps.Topics,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(subscriber ports.Subscriber, topics []string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Subscriber: subscriber,
		Clock:      store,
		Topics:     topics,
		Logger:     logger,
	})
	module.Store = store
	return module
}
