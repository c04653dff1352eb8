package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"crossbank/internal/platform/banks"
)

// Postgres wraps DB connectivity for one bank partition.
type Postgres struct {
	DB *gorm.DB
}

func Connect(dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{DB: db}, nil
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Fleet holds one connection per configured bank, keyed by bank key.
// Banks are independently provisioned, so one unreachable partition fails
// only its own queries, never the fleet.
type Fleet struct {
	conns map[string]*Postgres
}

// ConnectFleet opens a connection per bank in the registry. Every DSN must
// be present; mixing memory and postgres banks in one process is not a
// supported wiring.
func ConnectFleet(registry *banks.Registry) (*Fleet, error) {
	fleet := &Fleet{conns: make(map[string]*Postgres, registry.Count())}
	for _, bank := range registry.List() {
		pg, err := Connect(bank.DSN)
		if err != nil {
			_ = fleet.Close()
			return nil, fmt.Errorf("connect bank %s: %w", bank.Key, err)
		}
		fleet.conns[bank.Key] = pg
	}
	return fleet, nil
}

// Handles returns the gorm handle table used by repository adapters.
func (f *Fleet) Handles() map[string]*gorm.DB {
	out := make(map[string]*gorm.DB, len(f.conns))
	for key, pg := range f.conns {
		out[key] = pg.DB
	}
	return out
}

func (f *Fleet) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for key, pg := range f.conns {
		if err := pg.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close bank %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
