package ports

import (
	"context"
	"time"
)

const (
	RelationManagerToUser            = "manager_to_user"
	RelationSuperiorManagerToManager = "superior_manager_to_manager"
)

type UserRef struct {
	ID                string
	Email             string
	FullName          string
	IsAdmin           bool
	IsManager         bool
	IsSuperiorManager bool
	BankKey           string
}

type Relationship struct {
	ID            string
	SuperiorID    string
	SubordinateID string
	Type          string
	BankKey       string
	CreatedAt     time.Time
}

// JoinedRelationship carries the display names resolved against the owning
// bank's user table. Empty names mean the reference did not resolve.
type JoinedRelationship struct {
	Relationship
	SuperiorName    string
	SubordinateName string
}

// Repository is the per-bank hierarchy capability. AccessibleUserIDs
// performs the bounded two-level expansion inside the bank that owns the
// actor; it never crosses banks.
type Repository interface {
	FindUser(ctx context.Context, bankKey string, userID string) (UserRef, bool, error)
	InsertRelationship(ctx context.Context, rel Relationship) error
	DeleteRelationship(ctx context.Context, bankKey string, relationshipID string) (bool, error)
	ListRelationships(ctx context.Context, bankKey string) ([]JoinedRelationship, error)
	AccessibleUserIDs(ctx context.Context, bankKey string, actorID string) ([]string, error)
	MarkManager(ctx context.Context, bankKey string, userID string) error
	MarkSuperiorManager(ctx context.Context, bankKey string, userID string) error
}

type BankCatalog interface {
	Keys() []string
	Count() int
	Has(key string) bool
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Clock interface {
	Now() time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, fields map[string]string) error
}
