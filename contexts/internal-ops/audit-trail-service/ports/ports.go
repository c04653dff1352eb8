package ports

import (
	"context"
	"time"
)

// EventEnvelope is the wire shape carried by the in-process event bus.
// Publishers fill Fields with flat string pairs so the audit trail never
// needs to understand producer payloads.
type EventEnvelope struct {
	EventID    string
	EventType  string
	OccurredAt time.Time
	Fields     map[string]string
}

type AuditEntry struct {
	AuditID    string
	Action     string
	ActorID    string
	BankKey    string
	TargetID   string
	Detail     map[string]string
	OccurredAt time.Time
}

// Repository is the audit persistence boundary. Durable storage is an
// external collaborator; in-process wiring uses the memory adapter.
type Repository interface {
	AppendAuditEntry(ctx context.Context, row AuditEntry) error
	ListRecentAuditEntries(ctx context.Context, limit int) ([]AuditEntry, error)
}

type Subscriber interface {
	Subscribe(topic string) <-chan EventEnvelope
}

type Clock interface {
	Now() time.Time
}
