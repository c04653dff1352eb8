package memory

import (
	"context"
	"sort"
	"sync"

	domainerrors "crossbank/contexts/accounts/hierarchy-service/domain/errors"
	"crossbank/contexts/accounts/hierarchy-service/ports"
)

// accessibleDepth bounds the subordinate expansion to the two hierarchy
// tiers the product defines: superior manager → manager → user. This is a
// deliberate constant, not an emergent property of nested calls.
const accessibleDepth = 2

type bankData struct {
	users         []ports.UserRef
	relationships []ports.Relationship
}

type Store struct {
	mu    sync.Mutex
	banks map[string]*bankData
	fail  map[string]error
}

func NewStore(bankKeys ...string) *Store {
	s := &Store{
		banks: make(map[string]*bankData, len(bankKeys)),
		fail:  make(map[string]error),
	}
	for _, key := range bankKeys {
		s.banks[key] = &bankData{}
	}
	return s
}

func (s *Store) SeedUser(bankKey string, user ports.UserRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank(bankKey).users = append(s.bank(bankKey).users, user)
}

func (s *Store) SeedRelationship(rel ports.Relationship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank(rel.BankKey).relationships = append(s.bank(rel.BankKey).relationships, rel)
}

func (s *Store) SetBankError(bankKey string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, bankKey)
		return
	}
	s.fail[bankKey] = err
}

func (s *Store) FindUser(_ context.Context, bankKey string, userID string) (ports.UserRef, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return ports.UserRef{}, false, err
	}
	data, ok := s.banks[bankKey]
	if !ok {
		return ports.UserRef{}, false, domainerrors.ErrBankUnavailable
	}
	for _, user := range data.users {
		if user.ID == userID {
			return user, true, nil
		}
	}
	return ports.UserRef{}, false, nil
}

func (s *Store) InsertRelationship(_ context.Context, rel ports.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(rel.BankKey); err != nil {
		return err
	}
	data, ok := s.banks[rel.BankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}
	for _, existing := range data.relationships {
		if existing.SuperiorID == rel.SuperiorID &&
			existing.SubordinateID == rel.SubordinateID &&
			existing.Type == rel.Type {
			return domainerrors.ErrRelationshipExists
		}
	}
	data.relationships = append(data.relationships, rel)
	return nil
}

func (s *Store) DeleteRelationship(_ context.Context, bankKey string, relationshipID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return false, err
	}
	data, ok := s.banks[bankKey]
	if !ok {
		return false, domainerrors.ErrBankUnavailable
	}
	for i, rel := range data.relationships {
		if rel.ID == relationshipID {
			data.relationships = append(data.relationships[:i], data.relationships[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListRelationships(_ context.Context, bankKey string) ([]ports.JoinedRelationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return nil, err
	}
	data, ok := s.banks[bankKey]
	if !ok {
		return nil, domainerrors.ErrBankUnavailable
	}

	out := make([]ports.JoinedRelationship, 0, len(data.relationships))
	for _, rel := range data.relationships {
		out = append(out, ports.JoinedRelationship{
			Relationship:    rel,
			SuperiorName:    s.displayName(data, rel.SuperiorID),
			SubordinateName: s.displayName(data, rel.SubordinateID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// AccessibleUserIDs walks superior→subordinate edges from the actor,
// breadth-first, bounded by accessibleDepth. The visited set guards against
// cyclic data producing an endless walk.
func (s *Store) AccessibleUserIDs(_ context.Context, bankKey string, actorID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return nil, err
	}
	data, ok := s.banks[bankKey]
	if !ok {
		return nil, domainerrors.ErrBankUnavailable
	}

	visited := map[string]struct{}{actorID: {}}
	frontier := []string{actorID}
	var out []string

	for depth := 0; depth < accessibleDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, superiorID := range frontier {
			for _, rel := range data.relationships {
				if rel.SuperiorID != superiorID {
					continue
				}
				if _, seen := visited[rel.SubordinateID]; seen {
					continue
				}
				visited[rel.SubordinateID] = struct{}{}
				out = append(out, rel.SubordinateID)
				next = append(next, rel.SubordinateID)
			}
		}
		frontier = next
	}
	return out, nil
}

func (s *Store) MarkManager(_ context.Context, bankKey string, userID string) error {
	return s.setRole(bankKey, userID, func(u *ports.UserRef) { u.IsManager = true })
}

func (s *Store) MarkSuperiorManager(_ context.Context, bankKey string, userID string) error {
	return s.setRole(bankKey, userID, func(u *ports.UserRef) { u.IsSuperiorManager = true })
}

func (s *Store) setRole(bankKey string, userID string, apply func(*ports.UserRef)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return err
	}
	data, ok := s.banks[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}
	for i := range data.users {
		if data.users[i].ID == userID {
			apply(&data.users[i])
			return nil
		}
	}
	return domainerrors.ErrUserNotFound
}

func (s *Store) bank(bankKey string) *bankData {
	data, ok := s.banks[bankKey]
	if !ok {
		data = &bankData{}
		s.banks[bankKey] = data
	}
	return data
}

func (s *Store) bankErr(bankKey string) error {
	if err, failing := s.fail[bankKey]; failing {
		return err
	}
	return nil
}

func (s *Store) displayName(data *bankData, userID string) string {
	for _, user := range data.users {
		if user.ID == userID {
			if user.FullName != "" {
				return user.FullName
			}
			return user.Email
		}
	}
	return ""
}
