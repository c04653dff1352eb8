package ports

import (
	"context"
	"time"
)

type User struct {
	ID                string
	Email             string
	FullName          string
	FirstName         string
	LastName          string
	KYCStatus         string
	IsAdmin           bool
	IsManager         bool
	IsSuperiorManager bool
	CreatedAt         time.Time
}

// UserRow is a user annotated with its owning bank. Identity is the pair
// (BankKey, ID); an id alone is not unique across banks.
type UserRow struct {
	User
	BankKey  string
	BankName string
}

// BankQuery is the per-bank window a fan-out issues. RestrictToIDs nil means
// unrestricted; a non-nil set constrains both rows and the exact count.
type BankQuery struct {
	KYCStatus     string
	Search        string
	Limit         int
	Offset        int
	RestrictToIDs []string
}

// Repository answers one bank at a time. ListUsers returns the window rows
// ordered by created_at descending plus the exact count of all rows matching
// the filter regardless of the window.
type Repository interface {
	ListUsers(ctx context.Context, bankKey string, q BankQuery) ([]User, int64, error)
	UpdateKYCStatus(ctx context.Context, bankKey string, userID string, status string) error
	DeleteUser(ctx context.Context, bankKey string, userID string) error
}

// Visibility is the resolved view scope for one actor. Restricted false
// means the actor sees every row the surrounding authorization lets through.
type Visibility struct {
	Restricted bool
	UserIDs    []string
}

// AccessResolver computes visibility for an actor. Resolution failures are a
// policy decision inside the resolver, never an error at this boundary.
type AccessResolver interface {
	ResolveVisibility(ctx context.Context, actorID string, bankKey string) Visibility
}

type BankCatalog interface {
	Keys() []string
	DisplayName(key string) string
	Count() int
	Has(key string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, fields map[string]string) error
}

type Pagination struct {
	Page       int
	PerPage    int
	TotalCount int
	TotalPages int
}

type ResultEnvelope struct {
	Rows       []UserRow
	Pagination Pagination
}
