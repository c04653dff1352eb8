package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	domainerrors "crossbank/contexts/accounts/directory-service/domain/errors"
	"crossbank/contexts/accounts/directory-service/ports"
)

type userModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	Email             string    `gorm:"column:email"`
	FirstName         string    `gorm:"column:first_name"`
	LastName          string    `gorm:"column:last_name"`
	FullName          string    `gorm:"column:full_name"`
	KYCStatus         string    `gorm:"column:kyc_status"`
	IsAdmin           bool      `gorm:"column:is_admin"`
	IsManager         bool      `gorm:"column:is_manager"`
	IsSuperiorManager bool      `gorm:"column:is_superiormanager"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func (m userModel) toPort() ports.User {
	return ports.User{
		ID:                m.ID,
		Email:             m.Email,
		FullName:          m.FullName,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		KYCStatus:         m.KYCStatus,
		IsAdmin:           m.IsAdmin,
		IsManager:         m.IsManager,
		IsSuperiorManager: m.IsSuperiorManager,
		CreatedAt:         m.CreatedAt,
	}
}

// Repository queries the per-bank user tables. One gorm handle per bank key;
// a handle that errors fails only that bank's call.
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

func (r *Repository) ListUsers(ctx context.Context, bankKey string, q ports.BankQuery) ([]ports.User, int64, error) {
	db, ok := r.dbs[bankKey]
	if !ok {
		return nil, 0, domainerrors.ErrBankUnavailable
	}

	filtered := func() *gorm.DB {
		tx := db.WithContext(ctx).Model(&userModel{})
		if q.KYCStatus != "" {
			tx = tx.Where("kyc_status = ?", q.KYCStatus)
		}
		if search := strings.TrimSpace(q.Search); search != "" {
			pattern := "%" + search + "%"
			tx = tx.Where(
				"email ILIKE ? OR full_name ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
		if q.RestrictToIDs != nil {
			tx = tx.Where("id IN ?", q.RestrictToIDs)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, r.logError("directory_repo_count_failed", bankKey, err)
	}

	var rows []userModel
	err := filtered().
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("directory_repo_list_failed", bankKey, err)
	}

	users := make([]ports.User, len(rows))
	for i, row := range rows {
		users[i] = row.toPort()
	}
	return users, total, nil
}

func (r *Repository) UpdateKYCStatus(ctx context.Context, bankKey string, userID string, status string) error {
	db, ok := r.dbs[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}

	tx := db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("kyc_status", status)
	if tx.Error != nil {
		return r.logError("directory_repo_kyc_update_failed", bankKey, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, bankKey string, userID string) error {
	db, ok := r.dbs[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}

	tx := db.WithContext(ctx).Where("id = ?", userID).Delete(&userModel{})
	if tx.Error != nil {
		return r.logError("directory_repo_delete_failed", bankKey, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) logError(event string, bankKey string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrUserNotFound
	}
	r.logger.Error("directory repository call failed",
		"event", event,
		"module", "accounts/directory-service",
		"layer", "adapters/postgres",
		"bank_key", bankKey,
		"error", err.Error(),
	)
	return err
}
