package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

const (
	OperationSet    = "set"
	OperationAdd    = "add"
	OperationDeduct = "deduct"
)

// Currencies is the supported currency set in the order updates are issued.
// The fixed order keeps per-currency logs deterministic.
var Currencies = []string{"usd", "eur", "cad", "btc", "eth", "usdt"}

// Repository applies one currency at a time against one bank. Add starts
// from zero for a missing row; deduct never drops a balance below zero.
type Repository interface {
	ApplyBalance(ctx context.Context, bankKey string, userID string, currency string, operation string, amount decimal.Decimal) error
	GetBalances(ctx context.Context, bankKey string, userID string) (map[string]decimal.Decimal, error)
}

type BankCatalog interface {
	Has(key string) bool
	Keys() []string
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, fields map[string]string) error
}
