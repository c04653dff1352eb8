package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domainerrors "crossbank/contexts/finance-core/balance-service/domain/errors"
	"crossbank/contexts/finance-core/balance-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Banks  ports.BankCatalog
	Events ports.EventPublisher
	Logger *slog.Logger
}

type UpdateBalancesInput struct {
	BankKey   string
	UserID    string
	Operation string
	// Balances maps currency name to a decimal string. Absent currencies are
	// untouched.
	Balances map[string]string
}

type UpdateResult struct {
	Success bool
}

// UpdateBalances issues one independent update per requested currency
// against the target bank. Calls are sequential and not transactional: a
// failed currency leaves earlier currencies applied, later currencies are
// still attempted, and the failure is logged rather than surfaced. The
// result reports success whenever the orchestration itself completes.
func (s Service) UpdateBalances(ctx context.Context, actorID string, input UpdateBalancesInput) (UpdateResult, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return UpdateResult{}, domainerrors.ErrInvalidRequest
	}
	if !s.Banks.Has(input.BankKey) {
		return UpdateResult{}, domainerrors.ErrBankNotFound
	}

	operation := strings.TrimSpace(input.Operation)
	if operation == "" {
		operation = ports.OperationSet
	}
	switch operation {
	case ports.OperationSet, ports.OperationAdd, ports.OperationDeduct:
	default:
		return UpdateResult{}, domainerrors.ErrInvalidOperation
	}

	amounts, err := parseAmounts(input.Balances)
	if err != nil {
		return UpdateResult{}, err
	}

	applied := make([]string, 0, len(amounts))
	for _, currency := range ports.Currencies {
		amount, requested := amounts[currency]
		if !requested {
			continue
		}
		if err := s.Repo.ApplyBalance(ctx, input.BankKey, input.UserID, currency, operation, amount); err != nil {
			resolveLogger(s.Logger).Error("currency update failed",
				"event", "balance_currency_update_failed",
				"module", "finance-core/balance-service",
				"layer", "application",
				"bank_key", input.BankKey,
				"user_id", input.UserID,
				"currency", currency,
				"operation", operation,
				"error", err.Error(),
			)
			continue
		}
		applied = append(applied, currency)
	}

	s.publish(ctx, "balances.updated", map[string]string{
		"actor_id":   actorID,
		"bank_key":   input.BankKey,
		"target_id":  input.UserID,
		"operation":  operation,
		"currencies": strings.Join(applied, ","),
	})
	return UpdateResult{Success: true}, nil
}

func (s Service) GetBalances(ctx context.Context, bankKey string, userID string) (map[string]decimal.Decimal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	if !s.Banks.Has(bankKey) {
		return nil, domainerrors.ErrBankNotFound
	}
	return s.Repo.GetBalances(ctx, bankKey, userID)
}

// parseAmounts validates the whole request before any update is issued, so
// a malformed amount fails the outer call instead of half-applying.
func parseAmounts(raw map[string]string) (map[string]decimal.Decimal, error) {
	supported := make(map[string]struct{}, len(ports.Currencies))
	for _, c := range ports.Currencies {
		supported[c] = struct{}{}
	}

	amounts := make(map[string]decimal.Decimal, len(raw))
	for currency, value := range raw {
		currency = strings.ToLower(strings.TrimSpace(currency))
		if _, ok := supported[currency]; !ok {
			return nil, domainerrors.ErrInvalidCurrency
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, domainerrors.ErrInvalidAmount
		}
		amounts[currency] = amount
	}
	return amounts, nil
}

func (s Service) publish(ctx context.Context, eventType string, fields map[string]string) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, eventType, fields); err != nil {
		resolveLogger(s.Logger).Warn("event publish failed",
			"event", "balance_event_publish_failed",
			"module", "finance-core/balance-service",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
