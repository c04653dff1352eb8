package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	directoryservice "crossbank/contexts/accounts/directory-service"
	directorypostgres "crossbank/contexts/accounts/directory-service/adapters/postgres"
	directoryports "crossbank/contexts/accounts/directory-service/ports"
	hierarchyservice "crossbank/contexts/accounts/hierarchy-service"
	hierarchypostgres "crossbank/contexts/accounts/hierarchy-service/adapters/postgres"
	hierarchyapp "crossbank/contexts/accounts/hierarchy-service/application"
	balanceservice "crossbank/contexts/finance-core/balance-service"
	balancepostgres "crossbank/contexts/finance-core/balance-service/adapters/postgres"
	audittrailservice "crossbank/contexts/internal-ops/audit-trail-service"
	auditports "crossbank/contexts/internal-ops/audit-trail-service/ports"
	"crossbank/internal/platform/banks"
	"crossbank/internal/platform/config"
	"crossbank/internal/platform/db"
	"crossbank/internal/platform/httpserver"
	"crossbank/internal/platform/messaging"

	"github.com/google/uuid"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const (
	topicDirectory = "accounts.directory"
	topicHierarchy = "accounts.hierarchy"
	topicBalances  = "finance.balances"
)

type APIApp struct {
	server *httpserver.Server
	fleet  *db.Fleet
	audit  audittrailservice.Module
	logger *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	registry, err := banks.NewRegistry(cfg.Banks)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	auditModule := audittrailservice.NewInMemoryModule(
		bus,
		[]string{topicDirectory, topicHierarchy, topicBalances},
		logger,
	)

	var fleet *db.Fleet
	var hierarchyModule hierarchyservice.Module
	var directoryModule directoryservice.Module
	var balanceModule balanceservice.Module

	if memoryMode(cfg.Banks) {
		hierarchyModule = hierarchyservice.NewInMemoryModule(hierarchyservice.Dependencies{
			Banks:  registry,
			IDs:    hierarchypostgres.UUIDGenerator{},
			Clock:  hierarchypostgres.SystemClock{},
			Events: busPublisher{bus: bus, topic: topicHierarchy},
			Logger: logger,
		})
		directoryModule = directoryservice.NewInMemoryModule(directoryservice.Dependencies{
			Banks:    registry,
			Resolver: hierarchyResolver{service: hierarchyModule.Service},
			Events:   busPublisher{bus: bus, topic: topicDirectory},
			Logger:   logger,
		})
		balanceModule = balanceservice.NewInMemoryModule(balanceservice.Dependencies{
			Banks:  registry,
			Events: busPublisher{bus: bus, topic: topicBalances},
			Logger: logger,
		})
	} else {
		fleet, err = db.ConnectFleet(registry)
		if err != nil {
			return nil, err
		}
		handles := fleet.Handles()

		hierarchyModule = hierarchyservice.NewModule(hierarchyservice.Dependencies{
			Repository: hierarchypostgres.NewRepository(handles, logger),
			Banks:      registry,
			IDs:        hierarchypostgres.UUIDGenerator{},
			Clock:      hierarchypostgres.SystemClock{},
			Events:     busPublisher{bus: bus, topic: topicHierarchy},
			Logger:     logger,
		})
		directoryModule = directoryservice.NewModule(directoryservice.Dependencies{
			Repository: directorypostgres.NewRepository(handles, logger),
			Banks:      registry,
			Resolver:   hierarchyResolver{service: hierarchyModule.Service},
			Events:     busPublisher{bus: bus, topic: topicDirectory},
			Logger:     logger,
		})
		balanceModule = balanceservice.NewModule(balanceservice.Dependencies{
			Repository: balancepostgres.NewRepository(handles, logger),
			Banks:      registry,
			Events:     busPublisher{bus: bus, topic: topicBalances},
			Logger:     logger,
		})
	}

	server := httpserver.New(
		directoryModule,
		hierarchyModule,
		balanceModule,
		auditModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
		cfg.DefaultPerPage,
	)
	return &APIApp{
		server: server,
		fleet:  fleet,
		audit:  auditModule,
		logger: logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	a.audit.Consumer.Start(ctx)
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start(ctx)
}

func (a *APIApp) Close() error {
	if a.fleet != nil {
		return a.fleet.Close()
	}
	return nil
}

// memoryMode holds when no bank carries a DSN. A partial fleet is treated
// as a config mistake upstream in ConnectFleet, not here.
func memoryMode(configured []config.BankConfig) bool {
	for _, bank := range configured {
		if strings.TrimSpace(bank.DSN) != "" {
			return false
		}
	}
	return true
}

// busPublisher adapts a context's event port onto the platform bus.
type busPublisher struct {
	bus   *messaging.Bus
	topic string
}

func (p busPublisher) Publish(ctx context.Context, eventType string, fields map[string]string) error {
	return p.bus.Publish(ctx, p.topic, auditports.EventEnvelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Fields:     fields,
	})
}

// hierarchyResolver exposes hierarchy visibility resolution through the
// directory service's port.
type hierarchyResolver struct {
	service hierarchyapp.Service
}

func (r hierarchyResolver) ResolveVisibility(ctx context.Context, actorID string, bankKey string) directoryports.Visibility {
	visibility := r.service.ResolveVisibility(ctx, actorID, bankKey)
	return directoryports.Visibility{
		Restricted: visibility.Restricted,
		UserIDs:    visibility.UserIDs,
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
