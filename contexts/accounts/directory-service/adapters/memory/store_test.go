package memory

import (
	"context"
	"testing"
	"time"

	"crossbank/contexts/accounts/directory-service/ports"
)

func seed(store *Store) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SeedUser("cayman", ports.User{ID: "u-1", Email: "alice@example.com", FullName: "Alice Moore", KYCStatus: "approved", CreatedAt: base})
	store.SeedUser("cayman", ports.User{ID: "u-2", Email: "bob@example.com", FirstName: "Bob", LastName: "Stone", KYCStatus: "pending", CreatedAt: base.Add(-time.Minute)})
	store.SeedUser("cayman", ports.User{ID: "u-3", Email: "carol@example.com", FullName: "Carol Reyes", KYCStatus: "approved", CreatedAt: base.Add(time.Minute)})
}

func TestListUsersSortsNewestFirst(t *testing.T) {
	store := NewStore("cayman")
	seed(store)

	rows, total, err := store.ListUsers(context.Background(), "cayman", ports.BankQuery{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	want := []string{"u-3", "u-1", "u-2"}
	for i, row := range rows {
		if row.ID != want[i] {
			t.Fatalf("row %d: expected %s, got %s", i, want[i], row.ID)
		}
	}
}

func TestListUsersKYCFilter(t *testing.T) {
	store := NewStore("cayman")
	seed(store)

	rows, total, err := store.ListUsers(context.Background(), "cayman", ports.BankQuery{KYCStatus: "pending", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != "u-2" {
		t.Fatalf("expected only u-2, got total=%d rows=%v", total, rows)
	}
}

func TestListUsersSearchMatchesNameFields(t *testing.T) {
	store := NewStore("cayman")
	seed(store)

	rows, _, err := store.ListUsers(context.Background(), "cayman", ports.BankQuery{Search: "STONE", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "u-2" {
		t.Fatalf("expected case-insensitive match on last name, got %v", rows)
	}

	rows, _, err = store.ListUsers(context.Background(), "cayman", ports.BankQuery{Search: "example.com", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected email search to match all, got %d", len(rows))
	}
}

func TestListUsersRestriction(t *testing.T) {
	store := NewStore("cayman")
	seed(store)

	rows, total, err := store.ListUsers(context.Background(), "cayman", ports.BankQuery{
		Limit:         10,
		RestrictToIDs: []string{"u-1", "u-3"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected restricted count 2, got total=%d rows=%d", total, len(rows))
	}

	// An empty non-nil restriction means zero visibility, unlike nil.
	rows, total, err = store.ListUsers(context.Background(), "cayman", ports.BankQuery{
		Limit:         10,
		RestrictToIDs: []string{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("expected zero visibility, got total=%d rows=%d", total, len(rows))
	}
}

func TestListUsersWindow(t *testing.T) {
	store := NewStore("cayman")
	seed(store)

	rows, total, err := store.ListUsers(context.Background(), "cayman", ports.BankQuery{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected exact total 3 regardless of window, got %d", total)
	}
	if len(rows) != 1 || rows[0].ID != "u-2" {
		t.Fatalf("expected last row u-2, got %v", rows)
	}
}
