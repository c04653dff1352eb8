package memory

import (
	"context"
	"sync"
	"time"

	"crossbank/contexts/internal-ops/audit-trail-service/ports"
)

type Store struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func NewStore() *Store {
	return &Store{entries: make([]ports.AuditEntry, 0, 128)}
}

func (s *Store) AppendAuditEntry(_ context.Context, row ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, row)
	return nil
}

func (s *Store) ListRecentAuditEntries(_ context.Context, limit int) ([]ports.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	out := make([]ports.AuditEntry, 0, limit)
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
