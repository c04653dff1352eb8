package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"crossbank/contexts/accounts/directory-service/adapters/memory"
	domainerrors "crossbank/contexts/accounts/directory-service/domain/errors"
	"crossbank/contexts/accounts/directory-service/ports"
)

type catalogStub struct {
	keys  []string
	names map[string]string
}

func (c catalogStub) Keys() []string { return c.keys }
func (c catalogStub) Count() int     { return len(c.keys) }

func (c catalogStub) Has(key string) bool {
	for _, k := range c.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (c catalogStub) DisplayName(key string) string {
	if name, ok := c.names[key]; ok {
		return name
	}
	return key
}

type resolverStub struct {
	visibility ports.Visibility
}

func (r resolverStub) ResolveVisibility(context.Context, string, string) ports.Visibility {
	return r.visibility
}

type publisherStub struct {
	events []string
}

func (p *publisherStub) Publish(_ context.Context, eventType string, _ map[string]string) error {
	p.events = append(p.events, eventType)
	return nil
}

func threeBanks() catalogStub {
	return catalogStub{
		keys: []string{"digitalchain", "cayman", "lithuanian"},
		names: map[string]string{
			"digitalchain": "Digital Chain Bank",
			"cayman":       "Cayman Bank",
			"lithuanian":   "Lithuanian Bank",
		},
	}
}

func newService(t *testing.T, banks catalogStub) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore(banks.keys...)
	return Service{Repo: store, Banks: banks}, store
}

func seedSequential(store *memory.Store, bankKey string, count int, base time.Time) {
	for i := 0; i < count; i++ {
		store.SeedUser(bankKey, ports.User{
			ID:        bankKey + "-u" + string(rune('a'+i)),
			Email:     bankKey + string(rune('a'+i)) + "@example.com",
			KYCStatus: "approved",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
}

func TestListUsersSplitsPerPageAcrossBanks(t *testing.T) {
	banks := threeBanks()
	svc, store := newService(t, banks)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, key := range banks.keys {
		seedSequential(store, key, 10, base)
	}

	envelope, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 18 / 3 banks = 6 rows per bank.
	if len(envelope.Rows) != 18 {
		t.Fatalf("expected 18 rows, got %d", len(envelope.Rows))
	}
	perBank := map[string]int{}
	for _, row := range envelope.Rows {
		perBank[row.BankKey]++
	}
	for _, key := range banks.keys {
		if perBank[key] != 6 {
			t.Fatalf("expected 6 rows for %s, got %d", key, perBank[key])
		}
	}

	if envelope.Pagination.TotalCount != 30 {
		t.Fatalf("expected totalCount 30, got %d", envelope.Pagination.TotalCount)
	}
	if envelope.Pagination.TotalPages != 2 {
		t.Fatalf("expected totalPages 2, got %d", envelope.Pagination.TotalPages)
	}
}

func TestListUsersBankMajorOrdering(t *testing.T) {
	banks := threeBanks()
	svc, store := newService(t, banks)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, key := range banks.keys {
		seedSequential(store, key, 2, base)
	}

	envelope, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"digitalchain", "digitalchain", "cayman", "cayman", "lithuanian", "lithuanian"}
	if len(envelope.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(envelope.Rows))
	}
	for i, row := range envelope.Rows {
		if row.BankKey != want[i] {
			t.Fatalf("row %d: expected bank %s, got %s", i, want[i], row.BankKey)
		}
		if row.BankName != banks.names[want[i]] {
			t.Fatalf("row %d: expected bank name %s, got %s", i, banks.names[want[i]], row.BankName)
		}
	}
}

func TestListUsersSingleBankFilterKeepsWindowSize(t *testing.T) {
	banks := threeBanks()
	svc, store := newService(t, banks)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedSequential(store, "cayman", 10, base)

	envelope, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{
		Page:       1,
		PerPage:    18,
		BankFilter: "cayman",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The window stays 18/3=6 even though only one bank is queried.
	if len(envelope.Rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(envelope.Rows))
	}
	if envelope.Pagination.TotalCount != 10 {
		t.Fatalf("expected totalCount 10, got %d", envelope.Pagination.TotalCount)
	}
}

func TestListUsersSecondPageOffsets(t *testing.T) {
	banks := threeBanks()
	svc, store := newService(t, banks)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedSequential(store, "digitalchain", 8, base)

	first, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 2, PerPage: 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Rows) != 6 {
		t.Fatalf("expected 6 rows on page 1, got %d", len(first.Rows))
	}
	if len(second.Rows) != 2 {
		t.Fatalf("expected 2 rows on page 2, got %d", len(second.Rows))
	}
	seen := map[string]bool{}
	for _, row := range first.Rows {
		seen[row.ID] = true
	}
	for _, row := range second.Rows {
		if seen[row.ID] {
			t.Fatalf("row %s appeared on both pages", row.ID)
		}
	}
}

func TestListUsersSkipsUnreachableBank(t *testing.T) {
	banks := threeBanks()
	svc, store := newService(t, banks)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedSequential(store, "digitalchain", 3, base)
	seedSequential(store, "cayman", 3, base)
	seedSequential(store, "lithuanian", 3, base)
	store.SetBankError("lithuanian", errors.New("connection refused"))

	envelope, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 18})
	if err != nil {
		t.Fatalf("expected aggregate success, got %v", err)
	}

	if len(envelope.Rows) != 6 {
		t.Fatalf("expected 6 rows from reachable banks, got %d", len(envelope.Rows))
	}
	for _, row := range envelope.Rows {
		if row.BankKey == "lithuanian" {
			t.Fatalf("unexpected row from unreachable bank")
		}
	}
	if envelope.Pagination.TotalCount != 6 {
		t.Fatalf("expected totalCount 6, got %d", envelope.Pagination.TotalCount)
	}
}

func TestListUsersRestrictedActorSeesOwnBankOnly(t *testing.T) {
	banks := threeBanks()
	store := memory.NewStore(banks.keys...)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SeedUser("cayman", ports.User{ID: "u1", Email: "u1@example.com", CreatedAt: base})
	store.SeedUser("cayman", ports.User{ID: "u2", Email: "u2@example.com", CreatedAt: base.Add(-time.Minute)})
	store.SeedUser("cayman", ports.User{ID: "u3", Email: "u3@example.com", CreatedAt: base.Add(-2 * time.Minute)})
	seedSequential(store, "digitalchain", 4, base)

	svc := Service{
		Repo:  store,
		Banks: banks,
		Resolver: resolverStub{visibility: ports.Visibility{
			Restricted: true,
			UserIDs:    []string{"u1", "u2"},
		}},
	}

	envelope, err := svc.ListUsers(context.Background(), Actor{ID: "mgr-1", BankKey: "cayman"}, ListUsersQuery{Page: 1, PerPage: 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(envelope.Rows) != 2 {
		t.Fatalf("expected 2 visible rows, got %d", len(envelope.Rows))
	}
	for _, row := range envelope.Rows {
		if row.BankKey != "cayman" {
			t.Fatalf("restricted actor saw foreign bank %s", row.BankKey)
		}
	}
	if envelope.Pagination.TotalCount != 2 {
		t.Fatalf("expected restricted totalCount 2, got %d", envelope.Pagination.TotalCount)
	}
}

func TestListUsersUnrestrictedWhenNoActor(t *testing.T) {
	banks := threeBanks()
	store := memory.NewStore(banks.keys...)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedSequential(store, "digitalchain", 2, base)
	seedSequential(store, "cayman", 2, base)

	svc := Service{
		Repo:  store,
		Banks: banks,
		// A restricted resolver must not be consulted for an empty actor.
		Resolver: resolverStub{visibility: ports.Visibility{Restricted: true}},
	}

	envelope, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(envelope.Rows))
	}
}

func TestListUsersKYCFilterAllMeansUnfiltered(t *testing.T) {
	banks := threeBanks()
	svc, store := newService(t, banks)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SeedUser("cayman", ports.User{ID: "u-1", KYCStatus: "approved", CreatedAt: base})
	store.SeedUser("cayman", ports.User{ID: "u-2", KYCStatus: "pending", CreatedAt: base.Add(-time.Minute)})

	envelope, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{
		Page:      1,
		PerPage:   18,
		KYCFilter: KYCFilterAll,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Rows) != 2 {
		t.Fatalf("expected the all sentinel to disable the kyc filter, got %d rows", len(envelope.Rows))
	}

	envelope, err = svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{
		Page:      1,
		PerPage:   18,
		KYCFilter: "pending",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Rows) != 1 || envelope.Rows[0].ID != "u-2" {
		t.Fatalf("expected only the pending user, got %v", envelope.Rows)
	}
}

func TestListUsersValidation(t *testing.T) {
	banks := threeBanks()
	svc, _ := newService(t, banks)

	if _, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 0, PerPage: 18}); !errors.Is(err, domainerrors.ErrInvalidListQuery) {
		t.Fatalf("expected ErrInvalidListQuery for page 0, got %v", err)
	}
	if _, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 0}); !errors.Is(err, domainerrors.ErrInvalidListQuery) {
		t.Fatalf("expected ErrInvalidListQuery for perPage 0, got %v", err)
	}
	if _, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 18, BankFilter: "monaco"}); !errors.Is(err, domainerrors.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestListUsersEmptyDirectory(t *testing.T) {
	banks := threeBanks()
	svc, _ := newService(t, banks)

	envelope, err := svc.ListUsers(context.Background(), Actor{}, ListUsersQuery{Page: 1, PerPage: 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(envelope.Rows))
	}
	if envelope.Pagination.TotalPages != 0 {
		t.Fatalf("expected totalPages 0, got %d", envelope.Pagination.TotalPages)
	}
}

func TestUpdateKYCStatus(t *testing.T) {
	banks := threeBanks()
	store := memory.NewStore(banks.keys...)
	store.SeedUser("cayman", ports.User{ID: "u1", KYCStatus: "pending"})
	publisher := &publisherStub{}
	svc := Service{Repo: store, Banks: banks, Events: publisher}

	if err := svc.UpdateKYCStatus(context.Background(), Actor{ID: "admin-1"}, "cayman", "u1", "approved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0] != "user.kyc_updated" {
		t.Fatalf("expected user.kyc_updated event, got %v", publisher.events)
	}

	if err := svc.UpdateKYCStatus(context.Background(), Actor{}, "cayman", "u1", "verified"); !errors.Is(err, domainerrors.ErrInvalidKYCStatus) {
		t.Fatalf("expected ErrInvalidKYCStatus, got %v", err)
	}
	if err := svc.UpdateKYCStatus(context.Background(), Actor{}, "monaco", "u1", "approved"); !errors.Is(err, domainerrors.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
	if err := svc.UpdateKYCStatus(context.Background(), Actor{}, "cayman", "ghost", "approved"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	banks := threeBanks()
	store := memory.NewStore(banks.keys...)
	store.SeedUser("digitalchain", ports.User{ID: "u1"})
	publisher := &publisherStub{}
	svc := Service{Repo: store, Banks: banks, Events: publisher}

	if err := svc.DeleteUser(context.Background(), Actor{ID: "admin-1"}, "digitalchain", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), Actor{ID: "admin-1"}, "digitalchain", "u1"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0] != "user.deleted" {
		t.Fatalf("expected one user.deleted event, got %v", publisher.events)
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct {
		value, by, want int
	}{
		{18, 3, 6},
		{10, 3, 4},
		{0, 3, 0},
		{1, 3, 1},
		{-5, 3, 0},
		{7, 0, 0},
	}
	for _, tc := range cases {
		if got := ceilDiv(tc.value, tc.by); got != tc.want {
			t.Fatalf("ceilDiv(%d, %d) = %d, want %d", tc.value, tc.by, got, tc.want)
		}
	}
}
