package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "crossbank/contexts/accounts/hierarchy-service/domain/errors"
	"crossbank/contexts/accounts/hierarchy-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Banks  ports.BankCatalog
	IDs    ports.IDGenerator
	Clock  ports.Clock
	Events ports.EventPublisher
	Logger *slog.Logger
}

type AssignInput struct {
	SuperiorID    string
	SubordinateID string
	Type          string
}

// AssignRelationship validates and persists one typed superior→subordinate
// edge. Both endpoints must resolve inside the same bank, and the role
// invariants for the relationship type must hold.
func (s Service) AssignRelationship(ctx context.Context, actorID string, input AssignInput) (ports.Relationship, error) {
	superiorID := strings.TrimSpace(input.SuperiorID)
	subordinateID := strings.TrimSpace(input.SubordinateID)
	if superiorID == "" || subordinateID == "" || superiorID == subordinateID {
		return ports.Relationship{}, domainerrors.ErrInvalidRequest
	}
	if input.Type != ports.RelationManagerToUser && input.Type != ports.RelationSuperiorManagerToManager {
		return ports.Relationship{}, domainerrors.ErrInvalidRelationType
	}

	superior, err := s.locateUser(ctx, superiorID)
	if err != nil {
		return ports.Relationship{}, err
	}
	subordinate, err := s.locateUser(ctx, subordinateID)
	if err != nil {
		return ports.Relationship{}, err
	}
	if superior.BankKey != subordinate.BankKey {
		return ports.Relationship{}, domainerrors.ErrCrossBankRelationship
	}
	if err := validateRoles(input.Type, superior, subordinate); err != nil {
		return ports.Relationship{}, err
	}

	id, err := s.IDs.NewID(ctx)
	if err != nil {
		return ports.Relationship{}, err
	}
	rel := ports.Relationship{
		ID:            id,
		SuperiorID:    superiorID,
		SubordinateID: subordinateID,
		Type:          input.Type,
		BankKey:       superior.BankKey,
		CreatedAt:     s.now(),
	}
	if err := s.Repo.InsertRelationship(ctx, rel); err != nil {
		return ports.Relationship{}, err
	}

	s.publish(ctx, "hierarchy.assigned", map[string]string{
		"actor_id":       actorID,
		"bank_key":       rel.BankKey,
		"target_id":      rel.ID,
		"superior_id":    rel.SuperiorID,
		"subordinate_id": rel.SubordinateID,
		"relation_type":  rel.Type,
	})
	return rel, nil
}

// UnassignRelationship sweeps the banks in registry order and stops at the
// first bank that reports a deletion. The caller supplies only the id;
// relationship ids are UUIDv4 per bank, so a cross-bank id collision is the
// documented residual risk of this sweep.
func (s Service) UnassignRelationship(ctx context.Context, actorID string, relationshipID string) error {
	relationshipID = strings.TrimSpace(relationshipID)
	if relationshipID == "" {
		return domainerrors.ErrInvalidRequest
	}

	for _, bankKey := range s.Banks.Keys() {
		deleted, err := s.Repo.DeleteRelationship(ctx, bankKey, relationshipID)
		if err != nil {
			resolveLogger(s.Logger).Warn("relationship delete attempt failed",
				"event", "hierarchy_delete_attempt_failed",
				"module", "accounts/hierarchy-service",
				"layer", "application",
				"bank_key", bankKey,
				"relationship_id", relationshipID,
				"error", err.Error(),
			)
			continue
		}
		if deleted {
			s.publish(ctx, "hierarchy.unassigned", map[string]string{
				"actor_id":  actorID,
				"bank_key":  bankKey,
				"target_id": relationshipID,
			})
			return nil
		}
	}
	return domainerrors.ErrRelationshipNotFound
}

// ListRelationships concatenates every bank's relationships in registry
// order. A bank that fails is skipped; unresolved endpoint names render as
// "Unknown" rather than failing the call.
func (s Service) ListRelationships(ctx context.Context) ([]ports.JoinedRelationship, error) {
	out := make([]ports.JoinedRelationship, 0, 32)
	for _, bankKey := range s.Banks.Keys() {
		rows, err := s.Repo.ListRelationships(ctx, bankKey)
		if err != nil {
			resolveLogger(s.Logger).Warn("bank relationships skipped",
				"event", "hierarchy_bank_skipped",
				"module", "accounts/hierarchy-service",
				"layer", "application",
				"bank_key", bankKey,
				"error", err.Error(),
			)
			continue
		}
		for _, row := range rows {
			if strings.TrimSpace(row.SuperiorName) == "" {
				row.SuperiorName = "Unknown"
			}
			if strings.TrimSpace(row.SubordinateName) == "" {
				row.SubordinateName = "Unknown"
			}
			out = append(out, row)
		}
	}
	return out, nil
}

func (s Service) PromoteManager(ctx context.Context, actorID string, bankKey string, userID string) error {
	user, err := s.requireUser(ctx, bankKey, userID)
	if err != nil {
		return err
	}
	if user.IsManager {
		return nil
	}
	if err := s.Repo.MarkManager(ctx, bankKey, user.ID); err != nil {
		return err
	}
	s.publish(ctx, "hierarchy.manager_promoted", map[string]string{
		"actor_id":  actorID,
		"bank_key":  bankKey,
		"target_id": user.ID,
	})
	return nil
}

func (s Service) PromoteSuperiorManager(ctx context.Context, actorID string, bankKey string, userID string) error {
	user, err := s.requireUser(ctx, bankKey, userID)
	if err != nil {
		return err
	}
	if !user.IsManager {
		return domainerrors.ErrSuperiorRoleMismatch
	}
	if user.IsSuperiorManager {
		return nil
	}
	if err := s.Repo.MarkSuperiorManager(ctx, bankKey, user.ID); err != nil {
		return err
	}
	s.publish(ctx, "hierarchy.superior_manager_promoted", map[string]string{
		"actor_id":  actorID,
		"bank_key":  bankKey,
		"target_id": user.ID,
	})
	return nil
}

func validateRoles(relationType string, superior ports.UserRef, subordinate ports.UserRef) error {
	switch relationType {
	case ports.RelationManagerToUser:
		if !superior.IsManager {
			return domainerrors.ErrSuperiorRoleMismatch
		}
		if subordinate.IsManager || subordinate.IsSuperiorManager {
			return domainerrors.ErrSubordinateRoleMismatch
		}
	case ports.RelationSuperiorManagerToManager:
		if !superior.IsSuperiorManager {
			return domainerrors.ErrSuperiorRoleMismatch
		}
		if !subordinate.IsManager || subordinate.IsSuperiorManager {
			return domainerrors.ErrSubordinateRoleMismatch
		}
	}
	return nil
}

// locateUser scans the banks in registry order for the first user with the
// given id.
func (s Service) locateUser(ctx context.Context, userID string) (ports.UserRef, error) {
	for _, bankKey := range s.Banks.Keys() {
		user, found, err := s.Repo.FindUser(ctx, bankKey, userID)
		if err != nil {
			resolveLogger(s.Logger).Warn("user lookup attempt failed",
				"event", "hierarchy_user_lookup_failed",
				"module", "accounts/hierarchy-service",
				"layer", "application",
				"bank_key", bankKey,
				"user_id", userID,
				"error", err.Error(),
			)
			continue
		}
		if found {
			user.BankKey = bankKey
			return user, nil
		}
	}
	return ports.UserRef{}, domainerrors.ErrUserNotFound
}

func (s Service) requireUser(ctx context.Context, bankKey string, userID string) (ports.UserRef, error) {
	if !s.Banks.Has(bankKey) || strings.TrimSpace(userID) == "" {
		return ports.UserRef{}, domainerrors.ErrInvalidRequest
	}
	user, found, err := s.Repo.FindUser(ctx, bankKey, userID)
	if err != nil {
		return ports.UserRef{}, err
	}
	if !found {
		return ports.UserRef{}, domainerrors.ErrUserNotFound
	}
	user.BankKey = bankKey
	return user, nil
}

func (s Service) publish(ctx context.Context, eventType string, fields map[string]string) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, eventType, fields); err != nil {
		resolveLogger(s.Logger).Warn("event publish failed",
			"event", "hierarchy_event_publish_failed",
			"module", "accounts/hierarchy-service",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
