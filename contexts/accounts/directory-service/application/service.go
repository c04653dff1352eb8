package application

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	domainerrors "crossbank/contexts/accounts/directory-service/domain/errors"
	"crossbank/contexts/accounts/directory-service/ports"
)

// Sentinels accepted by the list query to mean "do not filter on this
// dimension". They share a spelling but are distinct query dimensions.
const (
	BankFilterAll = "all"
	KYCFilterAll  = "all"
)

var kycStatuses = map[string]struct{}{
	"not_started": {},
	"pending":     {},
	"approved":    {},
	"rejected":    {},
}

type Service struct {
	Repo     ports.Repository
	Banks    ports.BankCatalog
	Resolver ports.AccessResolver
	Events   ports.EventPublisher
	Logger   *slog.Logger
}

// Actor identifies the administrator issuing the request. Authentication is
// external; an empty ID means visibility resolution is skipped.
type Actor struct {
	ID      string
	BankKey string
}

type ListUsersQuery struct {
	Page       int
	PerPage    int
	BankFilter string
	KYCFilter  string
	Search     string
}

// ListUsers fans one logical listing out to every relevant bank and merges
// the per-bank pages and exact counts into one envelope. A bank that fails
// is skipped and logged; the aggregate call still succeeds with the rows the
// reachable banks returned.
func (s Service) ListUsers(ctx context.Context, actor Actor, q ListUsersQuery) (ports.ResultEnvelope, error) {
	if q.Page < 1 || q.PerPage < 1 {
		return ports.ResultEnvelope{}, domainerrors.ErrInvalidListQuery
	}

	bankFilter := strings.TrimSpace(q.BankFilter)
	if bankFilter == "" {
		bankFilter = BankFilterAll
	}
	if bankFilter != BankFilterAll && !s.Banks.Has(bankFilter) {
		return ports.ResultEnvelope{}, domainerrors.ErrBankNotFound
	}

	kycFilter := strings.TrimSpace(q.KYCFilter)
	if kycFilter == KYCFilterAll {
		kycFilter = ""
	}

	visibility := s.resolveVisibility(ctx, actor)

	// The per-bank window is sized from the configured bank count, not from
	// the number of banks this request actually queries. Filtering to one
	// bank therefore does not widen that bank's page.
	perBankLimit := ceilDiv(q.PerPage, s.Banks.Count())
	perBankOffset := (q.Page - 1) * perBankLimit

	keys := s.Banks.Keys()
	type bankPage struct {
		rows    []ports.User
		total   int64
		queried bool
	}
	pages := make([]bankPage, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		if bankFilter != BankFilterAll && key != bankFilter {
			continue
		}
		// A restricted actor sees only their own bank.
		if visibility.Restricted && key != actor.BankKey {
			continue
		}

		i, key := i, key
		g.Go(func() error {
			bq := ports.BankQuery{
				KYCStatus: kycFilter,
				Search:    strings.TrimSpace(q.Search),
				Limit:     perBankLimit,
				Offset:    perBankOffset,
			}
			if visibility.Restricted {
				bq.RestrictToIDs = visibility.UserIDs
			}

			rows, total, err := s.Repo.ListUsers(gctx, key, bq)
			if err != nil {
				resolveLogger(s.Logger).Warn("bank listing skipped",
					"event", "directory_bank_skipped",
					"module", "accounts/directory-service",
					"layer", "application",
					"bank_key", key,
					"error", err.Error(),
				)
				return nil
			}
			pages[i] = bankPage{rows: rows, total: total, queried: true}
			return nil
		})
	}
	// Workers never return an error; the group is the join barrier and the
	// index-addressed pages slice keeps ordering independent of completion.
	_ = g.Wait()

	envelope := ports.ResultEnvelope{
		Rows: make([]ports.UserRow, 0, q.PerPage),
		Pagination: ports.Pagination{
			Page:    q.Page,
			PerPage: q.PerPage,
		},
	}
	totalCount := 0
	for i, key := range keys {
		if !pages[i].queried {
			continue
		}
		name := s.Banks.DisplayName(key)
		for _, user := range pages[i].rows {
			envelope.Rows = append(envelope.Rows, ports.UserRow{
				User:     user,
				BankKey:  key,
				BankName: name,
			})
		}
		totalCount += int(pages[i].total)
	}
	envelope.Pagination.TotalCount = totalCount
	envelope.Pagination.TotalPages = ceilDiv(totalCount, q.PerPage)
	return envelope, nil
}

func (s Service) resolveVisibility(ctx context.Context, actor Actor) ports.Visibility {
	if s.Resolver == nil || strings.TrimSpace(actor.ID) == "" {
		return ports.Visibility{}
	}
	return s.Resolver.ResolveVisibility(ctx, actor.ID, actor.BankKey)
}

func (s Service) UpdateKYCStatus(ctx context.Context, actor Actor, bankKey string, userID string, status string) error {
	if !s.Banks.Has(bankKey) {
		return domainerrors.ErrBankNotFound
	}
	if strings.TrimSpace(userID) == "" {
		return domainerrors.ErrUserNotFound
	}
	if _, ok := kycStatuses[status]; !ok {
		return domainerrors.ErrInvalidKYCStatus
	}

	if err := s.Repo.UpdateKYCStatus(ctx, bankKey, userID, status); err != nil {
		return err
	}
	s.publish(ctx, "user.kyc_updated", map[string]string{
		"actor_id":   actor.ID,
		"bank_key":   bankKey,
		"target_id":  userID,
		"kyc_status": status,
	})
	return nil
}

func (s Service) DeleteUser(ctx context.Context, actor Actor, bankKey string, userID string) error {
	if !s.Banks.Has(bankKey) {
		return domainerrors.ErrBankNotFound
	}
	if strings.TrimSpace(userID) == "" {
		return domainerrors.ErrUserNotFound
	}

	if err := s.Repo.DeleteUser(ctx, bankKey, userID); err != nil {
		return err
	}
	s.publish(ctx, "user.deleted", map[string]string{
		"actor_id":  actor.ID,
		"bank_key":  bankKey,
		"target_id": userID,
	})
	return nil
}

func (s Service) publish(ctx context.Context, eventType string, fields map[string]string) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, eventType, fields); err != nil {
		resolveLogger(s.Logger).Warn("event publish failed",
			"event", "directory_event_publish_failed",
			"module", "accounts/directory-service",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

func ceilDiv(value int, by int) int {
	if value <= 0 || by <= 0 {
		return 0
	}
	return (value + by - 1) / by
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
