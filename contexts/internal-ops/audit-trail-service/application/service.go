package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"crossbank/contexts/internal-ops/audit-trail-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

// RecordEvent turns a bus event into an audit entry. Recording failures are
// logged and dropped so a broken audit sink never stalls the producing
// mutation path.
func (s Service) RecordEvent(ctx context.Context, event ports.EventEnvelope) {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	entry := ports.AuditEntry{
		AuditID:    fmt.Sprintf("audit_%d", s.now().UnixNano()),
		Action:     event.EventType,
		ActorID:    event.Fields["actor_id"],
		BankKey:    event.Fields["bank_key"],
		TargetID:   event.Fields["target_id"],
		Detail:     event.Fields,
		OccurredAt: occurredAt,
	}
	if err := s.Repo.AppendAuditEntry(ctx, entry); err != nil {
		resolveLogger(s.Logger).Error("audit entry append failed",
			"event", "audit_append_failed",
			"module", "internal-ops/audit-trail-service",
			"layer", "application",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
	}
}

func (s Service) ListRecent(ctx context.Context, limit int) ([]ports.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.Repo.ListRecentAuditEntries(ctx, limit)
}

// Consumer drains bus topics into the audit trail.
type Consumer struct {
	Subscriber ports.Subscriber
	Service    Service
	Topics     []string
	Logger     *slog.Logger
}

func (c Consumer) Start(ctx context.Context) {
	for _, topic := range c.Topics {
		topic := strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		events := c.Subscriber.Subscribe(topic)
		go func(topic string) {
			for {
				select {
				case <-ctx.Done():
					return
				case event, ok := <-events:
					if !ok {
						return
					}
					c.Service.RecordEvent(ctx, event)
				}
			}
		}(topic)

		resolveLogger(c.Logger).Info("audit consumer subscribed",
			"event", "audit_consumer_subscribed",
			"module", "internal-ops/audit-trail-service",
			"layer", "application",
			"topic", topic,
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
