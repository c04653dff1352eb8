package application

import (
	"context"
	"strings"
)

// Visibility is the resolved view scope for one actor. Restricted false
// grants unrestricted visibility.
type Visibility struct {
	Restricted bool
	UserIDs    []string
}

// FailOpenVisibility is the single place that encodes the access policy for
// unresolvable restrictions: a manager or superior manager with no assigned
// subordinates, or whose bank cannot answer the hierarchy query, is granted
// unrestricted visibility rather than zero visibility. Flipping this to
// fail-closed must not require touching any call site.
func FailOpenVisibility(ids []string, err error) Visibility {
	if err != nil || len(ids) == 0 {
		return Visibility{Restricted: false}
	}
	return Visibility{Restricted: true, UserIDs: ids}
}

// ResolveVisibility computes which user ids the actor may view, based on the
// two-tier manager hierarchy inside the actor's own bank.
func (s Service) ResolveVisibility(ctx context.Context, actorID string, bankKey string) Visibility {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" || !s.Banks.Has(bankKey) {
		return Visibility{}
	}

	actor, found, err := s.Repo.FindUser(ctx, bankKey, actorID)
	if err != nil || !found {
		if err != nil {
			s.logFailOpen(actorID, bankKey, err)
		}
		return Visibility{}
	}
	if !actor.IsManager && !actor.IsSuperiorManager {
		return Visibility{}
	}

	ids, err := s.Repo.AccessibleUserIDs(ctx, bankKey, actorID)
	if err != nil {
		s.logFailOpen(actorID, bankKey, err)
	}
	return FailOpenVisibility(ids, err)
}

func (s Service) logFailOpen(actorID string, bankKey string, err error) {
	resolveLogger(s.Logger).Warn("visibility resolution failed, granting unrestricted access",
		"event", "hierarchy_visibility_fail_open",
		"module", "accounts/hierarchy-service",
		"layer", "application",
		"actor_id", actorID,
		"bank_key", bankKey,
		"error", err.Error(),
	)
}
