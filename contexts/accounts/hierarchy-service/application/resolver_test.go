package application

import (
	"context"
	"errors"
	"testing"

	"crossbank/contexts/accounts/hierarchy-service/adapters/memory"
	"crossbank/contexts/accounts/hierarchy-service/ports"
)

func TestFailOpenVisibility(t *testing.T) {
	if v := FailOpenVisibility(nil, errors.New("boom")); v.Restricted {
		t.Fatalf("expected unrestricted on error")
	}
	if v := FailOpenVisibility([]string{"u-1"}, errors.New("boom")); v.Restricted {
		t.Fatalf("expected unrestricted on error even with ids")
	}
	if v := FailOpenVisibility(nil, nil); v.Restricted {
		t.Fatalf("expected unrestricted on empty id set")
	}
	v := FailOpenVisibility([]string{"u-1", "u-2"}, nil)
	if !v.Restricted || len(v.UserIDs) != 2 {
		t.Fatalf("expected restricted visibility with 2 ids, got %+v", v)
	}
}

func TestResolveVisibilityRestrictsManagerToSubordinates(t *testing.T) {
	store := memory.NewStore("digitalchain", "cayman", "lithuanian")
	store.SeedUser("cayman", ports.UserRef{ID: "mgr-1", IsManager: true})
	store.SeedRelationship(ports.Relationship{ID: "r1", SuperiorID: "mgr-1", SubordinateID: "u-1", Type: ports.RelationManagerToUser, BankKey: "cayman"})
	store.SeedRelationship(ports.Relationship{ID: "r2", SuperiorID: "mgr-1", SubordinateID: "u-2", Type: ports.RelationManagerToUser, BankKey: "cayman"})
	svc, _ := newService(store)

	v := svc.ResolveVisibility(context.Background(), "mgr-1", "cayman")
	if !v.Restricted {
		t.Fatalf("expected restricted visibility")
	}
	if len(v.UserIDs) != 2 {
		t.Fatalf("expected 2 accessible ids, got %v", v.UserIDs)
	}
}

func TestResolveVisibilityManagerWithoutSubordinatesFailsOpen(t *testing.T) {
	store := memory.NewStore("digitalchain", "cayman", "lithuanian")
	store.SeedUser("cayman", ports.UserRef{ID: "mgr-1", IsManager: true})
	svc, _ := newService(store)

	if v := svc.ResolveVisibility(context.Background(), "mgr-1", "cayman"); v.Restricted {
		t.Fatalf("expected unrestricted visibility for manager without subordinates")
	}
}

func TestResolveVisibilityFailsOpenOnBankError(t *testing.T) {
	store := memory.NewStore("digitalchain", "cayman", "lithuanian")
	store.SeedUser("cayman", ports.UserRef{ID: "mgr-1", IsManager: true})
	store.SeedRelationship(ports.Relationship{ID: "r1", SuperiorID: "mgr-1", SubordinateID: "u-1", Type: ports.RelationManagerToUser, BankKey: "cayman"})
	svc, _ := newService(store)

	store.SetBankError("cayman", errors.New("connection refused"))
	if v := svc.ResolveVisibility(context.Background(), "mgr-1", "cayman"); v.Restricted {
		t.Fatalf("expected unrestricted visibility when the bank cannot answer")
	}
}

func TestResolveVisibilityNonManagerUnrestricted(t *testing.T) {
	store := memory.NewStore("digitalchain", "cayman", "lithuanian")
	store.SeedUser("cayman", ports.UserRef{ID: "u-1"})
	svc, _ := newService(store)

	if v := svc.ResolveVisibility(context.Background(), "u-1", "cayman"); v.Restricted {
		t.Fatalf("expected unrestricted visibility for non-manager")
	}
}

func TestResolveVisibilityEmptyActorOrUnknownBank(t *testing.T) {
	store := memory.NewStore("digitalchain", "cayman", "lithuanian")
	svc, _ := newService(store)

	if v := svc.ResolveVisibility(context.Background(), "", "cayman"); v.Restricted {
		t.Fatalf("expected unrestricted visibility for empty actor")
	}
	if v := svc.ResolveVisibility(context.Background(), "mgr-1", "monaco"); v.Restricted {
		t.Fatalf("expected unrestricted visibility for unknown bank")
	}
}

func TestResolveVisibilitySuperiorManagerSeesTwoTiers(t *testing.T) {
	store := memory.NewStore("digitalchain", "cayman", "lithuanian")
	store.SeedUser("cayman", ports.UserRef{ID: "sm-1", IsManager: true, IsSuperiorManager: true})
	store.SeedRelationship(ports.Relationship{ID: "r1", SuperiorID: "sm-1", SubordinateID: "mgr-1", Type: ports.RelationSuperiorManagerToManager, BankKey: "cayman"})
	store.SeedRelationship(ports.Relationship{ID: "r2", SuperiorID: "mgr-1", SubordinateID: "u-1", Type: ports.RelationManagerToUser, BankKey: "cayman"})
	store.SeedRelationship(ports.Relationship{ID: "r3", SuperiorID: "u-1", SubordinateID: "u-deep", Type: ports.RelationManagerToUser, BankKey: "cayman"})
	svc, _ := newService(store)

	v := svc.ResolveVisibility(context.Background(), "sm-1", "cayman")
	if !v.Restricted {
		t.Fatalf("expected restricted visibility")
	}
	got := map[string]bool{}
	for _, id := range v.UserIDs {
		got[id] = true
	}
	if !got["mgr-1"] || !got["u-1"] {
		t.Fatalf("expected mgr-1 and u-1 accessible, got %v", v.UserIDs)
	}
	// The third tier is beyond the expansion bound.
	if got["u-deep"] {
		t.Fatalf("expected u-deep to stay outside the accessible set")
	}
}
