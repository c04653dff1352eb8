package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "crossbank/contexts/accounts/hierarchy-service/domain/errors"
	"crossbank/contexts/accounts/hierarchy-service/ports"
)

// accessibleDepth bounds the subordinate expansion to the two hierarchy
// tiers the product defines.
const accessibleDepth = 2

const uniqueViolationCode = "23505"

type userModel struct {
	ID                string `gorm:"column:id;primaryKey"`
	Email             string `gorm:"column:email"`
	FullName          string `gorm:"column:full_name"`
	IsAdmin           bool   `gorm:"column:is_admin"`
	IsManager         bool   `gorm:"column:is_manager"`
	IsSuperiorManager bool   `gorm:"column:is_superiormanager"`
}

func (userModel) TableName() string { return "users" }

type relationshipModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	SuperiorID       string    `gorm:"column:superior_id"`
	SubordinateID    string    `gorm:"column:subordinate_id"`
	RelationshipType string    `gorm:"column:relationship_type"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (relationshipModel) TableName() string { return "user_hierarchy" }

type joinedRow struct {
	relationshipModel
	SuperiorFullName    string `gorm:"column:superior_full_name"`
	SuperiorEmail       string `gorm:"column:superior_email"`
	SubordinateFullName string `gorm:"column:subordinate_full_name"`
	SubordinateEmail    string `gorm:"column:subordinate_email"`
}

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

func (r *Repository) FindUser(ctx context.Context, bankKey string, userID string) (ports.UserRef, bool, error) {
	db, ok := r.dbs[bankKey]
	if !ok {
		return ports.UserRef{}, false, domainerrors.ErrBankUnavailable
	}

	var row userModel
	err := db.WithContext(ctx).Where("id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserRef{}, false, nil
		}
		return ports.UserRef{}, false, r.logError("hierarchy_repo_find_user_failed", bankKey, err)
	}
	return ports.UserRef{
		ID:                row.ID,
		Email:             row.Email,
		FullName:          row.FullName,
		IsAdmin:           row.IsAdmin,
		IsManager:         row.IsManager,
		IsSuperiorManager: row.IsSuperiorManager,
		BankKey:           bankKey,
	}, true, nil
}

func (r *Repository) InsertRelationship(ctx context.Context, rel ports.Relationship) error {
	db, ok := r.dbs[rel.BankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}

	row := relationshipModel{
		ID:               rel.ID,
		SuperiorID:       rel.SuperiorID,
		SubordinateID:    rel.SubordinateID,
		RelationshipType: rel.Type,
		CreatedAt:        rel.CreatedAt,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRelationshipExists
		}
		return r.logError("hierarchy_repo_insert_failed", rel.BankKey, err)
	}
	return nil
}

func (r *Repository) DeleteRelationship(ctx context.Context, bankKey string, relationshipID string) (bool, error) {
	db, ok := r.dbs[bankKey]
	if !ok {
		return false, domainerrors.ErrBankUnavailable
	}

	tx := db.WithContext(ctx).Where("id = ?", relationshipID).Delete(&relationshipModel{})
	if tx.Error != nil {
		return false, r.logError("hierarchy_repo_delete_failed", bankKey, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *Repository) ListRelationships(ctx context.Context, bankKey string) ([]ports.JoinedRelationship, error) {
	db, ok := r.dbs[bankKey]
	if !ok {
		return nil, domainerrors.ErrBankUnavailable
	}

	var rows []joinedRow
	err := db.WithContext(ctx).
		Table("user_hierarchy AS h").
		Select(`h.id, h.superior_id, h.subordinate_id, h.relationship_type, h.created_at,
			sup.full_name AS superior_full_name, sup.email AS superior_email,
			sub.full_name AS subordinate_full_name, sub.email AS subordinate_email`).
		Joins("LEFT JOIN users AS sup ON sup.id = h.superior_id").
		Joins("LEFT JOIN users AS sub ON sub.id = h.subordinate_id").
		Order("h.created_at DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("hierarchy_repo_list_failed", bankKey, err)
	}

	out := make([]ports.JoinedRelationship, len(rows))
	for i, row := range rows {
		out[i] = ports.JoinedRelationship{
			Relationship: ports.Relationship{
				ID:            row.ID,
				SuperiorID:    row.SuperiorID,
				SubordinateID: row.SubordinateID,
				Type:          row.RelationshipType,
				BankKey:       bankKey,
				CreatedAt:     row.CreatedAt,
			},
			SuperiorName:    firstNonEmpty(row.SuperiorFullName, row.SuperiorEmail),
			SubordinateName: firstNonEmpty(row.SubordinateFullName, row.SubordinateEmail),
		}
	}
	return out, nil
}

// AccessibleUserIDs expands subordinates breadth-first, one query per tier,
// bounded by accessibleDepth. The visited set keeps cyclic rows from
// re-entering the frontier.
func (r *Repository) AccessibleUserIDs(ctx context.Context, bankKey string, actorID string) ([]string, error) {
	db, ok := r.dbs[bankKey]
	if !ok {
		return nil, domainerrors.ErrBankUnavailable
	}

	visited := map[string]struct{}{actorID: {}}
	frontier := []string{actorID}
	var out []string

	for depth := 0; depth < accessibleDepth && len(frontier) > 0; depth++ {
		var subordinateIDs []string
		err := db.WithContext(ctx).
			Model(&relationshipModel{}).
			Where("superior_id IN ?", frontier).
			Pluck("subordinate_id", &subordinateIDs).
			Error
		if err != nil {
			return nil, r.logError("hierarchy_repo_accessible_failed", bankKey, err)
		}

		var next []string
		for _, id := range subordinateIDs {
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			out = append(out, id)
			next = append(next, id)
		}
		frontier = next
	}
	return out, nil
}

func (r *Repository) MarkManager(ctx context.Context, bankKey string, userID string) error {
	return r.setFlag(ctx, bankKey, userID, "is_manager")
}

func (r *Repository) MarkSuperiorManager(ctx context.Context, bankKey string, userID string) error {
	return r.setFlag(ctx, bankKey, userID, "is_superiormanager")
}

func (r *Repository) setFlag(ctx context.Context, bankKey string, userID string, column string) error {
	db, ok := r.dbs[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}

	tx := db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update(column, true)
	if tx.Error != nil {
		return r.logError("hierarchy_repo_set_flag_failed", bankKey, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) logError(event string, bankKey string, err error) error {
	r.logger.Error("hierarchy repository call failed",
		"event", event,
		"module", "accounts/hierarchy-service",
		"layer", "adapters/postgres",
		"bank_key", bankKey,
		"error", err.Error(),
	)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
