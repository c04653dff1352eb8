package config

import "testing"

func TestParseBanks(t *testing.T) {
	banks, err := parseBanks("digitalchain=Digital Chain Bank=host=db1 user=app;cayman=Cayman Bank=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(banks) != 2 {
		t.Fatalf("expected 2 banks, got %d", len(banks))
	}
	if banks[0].Key != "digitalchain" || banks[0].Name != "Digital Chain Bank" {
		t.Fatalf("unexpected first bank: %+v", banks[0])
	}
	// The DSN segment keeps its own '=' separators.
	if banks[0].DSN != "host=db1 user=app" {
		t.Fatalf("expected keyword DSN preserved, got %q", banks[0].DSN)
	}
	if banks[1].DSN != "" {
		t.Fatalf("expected empty DSN for cayman, got %q", banks[1].DSN)
	}
}

func TestParseBanksMalformed(t *testing.T) {
	if _, err := parseBanks("justakey"); err == nil {
		t.Fatalf("expected error for entry without separators")
	}
	if _, err := parseBanks("=No Key=dsn"); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestParseBanksEmptyInput(t *testing.T) {
	banks, err := parseBanks("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if banks != nil {
		t.Fatalf("expected nil for blank input, got %v", banks)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("BANKS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServiceName != "crossbank" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.DefaultPerPage != 18 {
		t.Fatalf("expected default perPage 18, got %d", cfg.DefaultPerPage)
	}
	if len(cfg.Banks) != 3 {
		t.Fatalf("expected 3 default banks, got %d", len(cfg.Banks))
	}
	for _, bank := range cfg.Banks {
		if bank.DSN != "" {
			t.Fatalf("expected default banks without DSNs, got %+v", bank)
		}
	}
}
