package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "crossbank/contexts/finance-core/balance-service/domain/errors"
	"crossbank/contexts/finance-core/balance-service/ports"
)

type balanceModel struct {
	ID        string          `gorm:"column:id;primaryKey"`
	UserID    string          `gorm:"column:user_id"`
	Currency  string          `gorm:"column:currency"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (balanceModel) TableName() string { return "balances" }

type Repository struct {
	dbs    map[string]*gorm.DB
	logger *slog.Logger
}

func NewRepository(handles map[string]*gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{dbs: handles, logger: logger}
}

// ApplyBalance upserts one (user, currency) row. The conflict assignment
// carries the operation semantics so set/add/deduct stay atomic per
// currency; deduct clamps at zero.
func (r *Repository) ApplyBalance(ctx context.Context, bankKey string, userID string, currency string, operation string, amount decimal.Decimal) error {
	db, ok := r.dbs[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}

	var assignment clause.Expr
	switch operation {
	case ports.OperationSet:
		assignment = gorm.Expr("excluded.balance")
	case ports.OperationAdd:
		assignment = gorm.Expr("balances.balance + excluded.balance")
	case ports.OperationDeduct:
		// The insert seeds zero, so excluded.balance cannot carry the
		// deducted amount; bind it directly.
		assignment = gorm.Expr("GREATEST(balances.balance - ?, 0)", amount)
	default:
		return domainerrors.ErrInvalidOperation
	}

	seed := amount
	if operation == ports.OperationDeduct {
		// A deduct against a missing row must leave zero, not a negative
		// starting value.
		seed = decimal.Zero
	}

	row := balanceModel{
		ID:        uuid.NewString(),
		UserID:    userID,
		Currency:  currency,
		Balance:   seed,
		UpdatedAt: time.Now().UTC(),
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance":    assignment,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("balance_repo_apply_failed", bankKey, currency, err)
	}
	return nil
}

func (r *Repository) GetBalances(ctx context.Context, bankKey string, userID string) (map[string]decimal.Decimal, error) {
	db, ok := r.dbs[bankKey]
	if !ok {
		return nil, domainerrors.ErrBankUnavailable
	}

	var rows []balanceModel
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("balance_repo_get_failed", bankKey, "", err)
	}

	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Currency] = row.Balance
	}
	return out, nil
}

func (r *Repository) logError(event string, bankKey string, currency string, err error) error {
	r.logger.Error("balance repository call failed",
		"event", event,
		"module", "finance-core/balance-service",
		"layer", "adapters/postgres",
		"bank_key", bankKey,
		"currency", currency,
		"error", err.Error(),
	)
	return err
}
