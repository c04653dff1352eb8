package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainerrors "crossbank/contexts/accounts/directory-service/domain/errors"
	"crossbank/contexts/accounts/directory-service/ports"
)

// Store keeps one user table per bank. Test helpers can seed rows and mark
// a bank unreachable to exercise the skip-and-log path.
type Store struct {
	mu    sync.Mutex
	users map[string][]ports.User
	fail  map[string]error
}

func NewStore(bankKeys ...string) *Store {
	s := &Store{
		users: make(map[string][]ports.User, len(bankKeys)),
		fail:  make(map[string]error),
	}
	for _, key := range bankKeys {
		s.users[key] = nil
	}
	return s
}

func (s *Store) SeedUser(bankKey string, user ports.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[bankKey] = append(s.users[bankKey], user)
}

// SetBankError makes every call against bankKey fail with err until cleared
// with a nil err.
func (s *Store) SetBankError(bankKey string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, bankKey)
		return
	}
	s.fail[bankKey] = err
}

func (s *Store) ListUsers(_ context.Context, bankKey string, q ports.BankQuery) ([]ports.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return nil, 0, err
	}
	rows, ok := s.users[bankKey]
	if !ok {
		return nil, 0, domainerrors.ErrBankUnavailable
	}

	var restrict map[string]struct{}
	if q.RestrictToIDs != nil {
		restrict = make(map[string]struct{}, len(q.RestrictToIDs))
		for _, id := range q.RestrictToIDs {
			restrict[id] = struct{}{}
		}
	}

	matched := make([]ports.User, 0, len(rows))
	for _, user := range rows {
		if restrict != nil {
			if _, visible := restrict[user.ID]; !visible {
				continue
			}
		}
		if q.KYCStatus != "" && user.KYCStatus != q.KYCStatus {
			continue
		}
		if q.Search != "" && !matchesSearch(user, q.Search) {
			continue
		}
		matched = append(matched, user)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := q.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if q.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	window := make([]ports.User, end-start)
	copy(window, matched[start:end])
	return window, total, nil
}

func (s *Store) UpdateKYCStatus(_ context.Context, bankKey string, userID string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return err
	}
	rows, ok := s.users[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}
	for i := range rows {
		if rows[i].ID == userID {
			rows[i].KYCStatus = status
			return nil
		}
	}
	return domainerrors.ErrUserNotFound
}

func (s *Store) DeleteUser(_ context.Context, bankKey string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bankErr(bankKey); err != nil {
		return err
	}
	rows, ok := s.users[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}
	for i := range rows {
		if rows[i].ID == userID {
			s.users[bankKey] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrUserNotFound
}

func (s *Store) bankErr(bankKey string) error {
	if err, failing := s.fail[bankKey]; failing {
		return err
	}
	return nil
}

func matchesSearch(user ports.User, term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{user.Email, user.FullName, user.FirstName, user.LastName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
