package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	domainerrors "crossbank/contexts/finance-core/balance-service/domain/errors"
	"crossbank/contexts/finance-core/balance-service/ports"
)

type Store struct {
	mu       sync.Mutex
	balances map[string]map[string]map[string]decimal.Decimal // bank → user → currency
	fail     map[string]error
	failCur  map[string]error // currency-scoped failures for partial-failure tests
}

func NewStore(bankKeys ...string) *Store {
	s := &Store{
		balances: make(map[string]map[string]map[string]decimal.Decimal, len(bankKeys)),
		fail:     make(map[string]error),
		failCur:  make(map[string]error),
	}
	for _, key := range bankKeys {
		s.balances[key] = make(map[string]map[string]decimal.Decimal)
	}
	return s
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

// SetCurrencyError makes updates for one currency fail while the others
// keep succeeding.
func (s *Store) SetCurrencyError(currency string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failCur, currency)
		return
	}
	s.failCur[currency] = err
}

func (s *Store) ApplyBalance(_ context.Context, bankKey string, userID string, currency string, operation string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail[bankKey]; err != nil {
		return err
	}
	if err := s.failCur[currency]; err != nil {
		return err
	}
	bank, ok := s.balances[bankKey]
	if !ok {
		return domainerrors.ErrBankUnavailable
	}

	user, ok := bank[userID]
	if !ok {
		user = make(map[string]decimal.Decimal)
		bank[userID] = user
	}

	current := user[currency]
	switch operation {
	case ports.OperationSet:
		user[currency] = amount
	case ports.OperationAdd:
		user[currency] = current.Add(amount)
	case ports.OperationDeduct:
		next := current.Sub(amount)
		if next.IsNegative() {
			next = decimal.Zero
		}
		user[currency] = next
	default:
		return domainerrors.ErrInvalidOperation
	}
	return nil
}

func (s *Store) GetBalances(_ context.Context, bankKey string, userID string) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail[bankKey]; err != nil {
		return nil, err
	}
	bank, ok := s.balances[bankKey]
	if !ok {
		return nil, domainerrors.ErrBankUnavailable
	}

	out := make(map[string]decimal.Decimal, len(ports.Currencies))
	for currency, amount := range bank[userID] {
		out[currency] = amount
	}
	return out, nil
}
