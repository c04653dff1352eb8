package directoryservice

import (
	"log/slog"

	httpadapter "crossbank/contexts/accounts/directory-service/adapters/http"
	"crossbank/contexts/accounts/directory-service/adapters/memory"
	"crossbank/contexts/accounts/directory-service/application"
	"crossbank/contexts/accounts/directory-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Banks      ports.BankCatalog
	Resolver   ports.AccessResolver
	Events     ports.EventPublisher
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Repo:     deps.Repository,
				Banks:    deps.Banks,
				Resolver: deps.Resolver,
				Events:   deps.Events,
				Logger:   deps.Logger,
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
