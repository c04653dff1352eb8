package banks

import (
	"errors"
	"fmt"

	"crossbank/internal/platform/config"
)

// ErrBankNotFound is returned for lookups against a key that is not in the
// configured bank table.
var ErrBankNotFound = errors.New("bank not found")

// Bank is one backend partition. Credentials travel inside the DSN.
type Bank struct {
	Key  string
	Name string
	DSN  string
}

// Registry is the static bank table. It is built once at process start and
// immutable afterwards; iteration order is configuration order and every
// cross-bank read follows it.
type Registry struct {
	banks []Bank
	index map[string]int
}

func NewRegistry(configured []config.BankConfig) (*Registry, error) {
	if len(configured) == 0 {
		return nil, errors.New("at least one bank must be configured")
	}

	r := &Registry{
		banks: make([]Bank, 0, len(configured)),
		index: make(map[string]int, len(configured)),
	}
	for _, bc := range configured {
		if _, dup := r.index[bc.Key]; dup {
			return nil, fmt.Errorf("duplicate bank key %q", bc.Key)
		}
		r.index[bc.Key] = len(r.banks)
		r.banks = append(r.banks, Bank{Key: bc.Key, Name: bc.Name, DSN: bc.DSN})
	}
	return r, nil
}

// List returns the banks in configuration order. The slice is a copy.
func (r *Registry) List() []Bank {
	out := make([]Bank, len(r.banks))
	copy(out, r.banks)
	return out
}

// Keys returns the bank keys in configuration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.banks))
	for i, b := range r.banks {
		out[i] = b.Key
	}
	return out
}

func (r *Registry) Count() int {
	return len(r.banks)
}

func (r *Registry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// DisplayName returns the configured name for key, or key itself when the
// bank is unknown so callers joining names never render an empty label.
func (r *Registry) DisplayName(key string) string {
	if i, ok := r.index[key]; ok {
		return r.banks[i].Name
	}
	return key
}

func (r *Registry) Get(key string) (Bank, error) {
	i, ok := r.index[key]
	if !ok {
		return Bank{}, fmt.Errorf("%w: %s", ErrBankNotFound, key)
	}
	return r.banks[i], nil
}
