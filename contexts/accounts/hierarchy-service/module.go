package hierarchyservice

import (
	"log/slog"

	httpadapter "crossbank/contexts/accounts/hierarchy-service/adapters/http"
	"crossbank/contexts/accounts/hierarchy-service/adapters/memory"
	"crossbank/contexts/accounts/hierarchy-service/application"
	"crossbank/contexts/accounts/hierarchy-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Banks      ports.BankCatalog
	IDs        ports.IDGenerator
	Clock      ports.Clock
	Events     ports.EventPublisher
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Banks:  deps.Banks,
		IDs:    deps.IDs,
		Clock:  deps.Clock,
		Events: deps.Events,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service},
		Service: service,
	}
}

func NewInMemoryModule(deps Dependencies) Module {
	store := memory.NewStore(deps.Banks.Keys()...)
	deps.Repository = store
	module := NewModule(deps)
	module.Store = store
	return module
}
