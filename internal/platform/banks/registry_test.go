package banks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossbank/internal/platform/config"
)

func testBanks() []config.BankConfig {
	return []config.BankConfig{
		{Key: "digitalchain", Name: "Digital Chain Bank"},
		{Key: "cayman", Name: "Cayman Bank"},
		{Key: "lithuanian", Name: "Lithuanian Bank"},
	}
}

func TestRegistryPreservesConfigurationOrder(t *testing.T) {
	r, err := NewRegistry(testBanks())
	require.NoError(t, err)

	assert.Equal(t, []string{"digitalchain", "cayman", "lithuanian"}, r.Keys())
	assert.Equal(t, 3, r.Count())

	listed := r.List()
	require.Len(t, listed, 3)
	assert.Equal(t, "Cayman Bank", listed[1].Name)
}

func TestRegistryLookup(t *testing.T) {
	r, err := NewRegistry(testBanks())
	require.NoError(t, err)

	bank, err := r.Get("cayman")
	require.NoError(t, err)
	assert.Equal(t, "Cayman Bank", bank.Name)
	assert.True(t, r.Has("cayman"))

	_, err = r.Get("swiss")
	assert.True(t, errors.Is(err, ErrBankNotFound))
	assert.False(t, r.Has("swiss"))
	assert.Equal(t, "swiss", r.DisplayName("swiss"))
}

func TestRegistryRejectsDuplicateKeys(t *testing.T) {
	_, err := NewRegistry([]config.BankConfig{
		{Key: "cayman", Name: "Cayman Bank"},
		{Key: "cayman", Name: "Cayman Bank Again"},
	})
	require.Error(t, err)
}

func TestRegistryRejectsEmptyTable(t *testing.T) {
	_, err := NewRegistry(nil)
	require.Error(t, err)
}

func TestRegistryListReturnsCopy(t *testing.T) {
	r, err := NewRegistry(testBanks())
	require.NoError(t, err)

	listed := r.List()
	listed[0].Key = "mutated"

	assert.Equal(t, "digitalchain", r.Keys()[0])
}
