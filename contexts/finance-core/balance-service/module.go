package balanceservice

import (
	"log/slog"

	httpadapter "crossbank/contexts/finance-core/balance-service/adapters/http"
	"crossbank/contexts/finance-core/balance-service/adapters/memory"
	"crossbank/contexts/finance-core/balance-service/application"
	"crossbank/contexts/finance-core/balance-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Banks      ports.BankCatalog
	Events     ports.EventPublisher
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Repo:   deps.Repository,
				Banks:  deps.Banks,
				Events: deps.Events,
				Logger: deps.Logger,
			},
		},
	}
}

func NewInMemoryModule(deps Dependencies) Module {
	store := memory.NewStore(deps.Banks.Keys()...)
	deps.Repository = store
	module := NewModule(deps)
	module.Store = store
	return module
}
