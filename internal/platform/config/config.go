package config

import (
	"fmt"
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string
	HTTPPort       string
	Banks          []BankConfig
	DefaultPerPage int
}

// BankConfig describes one backend partition. The table is loaded once at
// process start and never reloaded.
type BankConfig struct {
	Key  string
	Name string
	DSN  string
}

// defaultBanks mirrors the three partitions provisioned for local
// development. DSNs are left empty so the process boots against memory
// adapters unless BANKS is set.
func defaultBanks() []BankConfig {
	return []BankConfig{
		{Key: "digitalchain", Name: "Digital Chain Bank"},
		{Key: "cayman", Name: "Cayman Bank"},
		{Key: "lithuanian", Name: "Lithuanian Bank"},
	}
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "crossbank"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	banks, err := parseBanks(os.Getenv("BANKS"))
	if err != nil {
		return Config{}, err
	}
	if len(banks) == 0 {
		banks = defaultBanks()
	}

	return Config{
		ServiceName:    service,
		HTTPPort:       port,
		Banks:          banks,
		DefaultPerPage: 18,
	}, nil
}

// parseBanks reads a "key=display name=dsn" list separated by semicolons.
// The dsn segment may itself contain '=' (postgres keyword DSNs), so only
// the first two separators split.
func parseBanks(raw string) ([]BankConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var banks []BankConfig
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 3)
		if len(parts) < 3 {
			return nil, fmt.Errorf("malformed bank entry %q: want key=name=dsn", entry)
		}
		bank := BankConfig{
			Key:  strings.TrimSpace(parts[0]),
			Name: strings.TrimSpace(parts[1]),
			DSN:  strings.TrimSpace(parts[2]),
		}
		if bank.Key == "" {
			return nil, fmt.Errorf("bank entry %q has an empty key", entry)
		}
		if bank.Name == "" {
			bank.Name = bank.Key
		}
		banks = append(banks, bank)
	}
	return banks, nil
}
