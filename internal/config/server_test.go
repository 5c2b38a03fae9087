package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.SettlementQueueSize != 256 {
		t.Fatalf("SettlementQueueSize = %d, want 256", cfg.SettlementQueueSize)
	}
	if cfg.MaxConcurrentGames != 16 {
		t.Fatalf("MaxConcurrentGames = %d, want 16", cfg.MaxConcurrentGames)
	}
	if cfg.PostgresDSN != "" {
		t.Fatalf("PostgresDSN = %q, want empty by default", cfg.PostgresDSN)
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/arena?sslmode=disable")
	t.Setenv("SETTLEMENT_WEBHOOK_URL", "http://localhost:9000/settlements")
	t.Setenv("MAX_CONCURRENT_GAMES", "4")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.PostgresDSN == "" {
		t.Fatal("PostgresDSN not picked up")
	}
	if cfg.SettlementWebhookURL != "http://localhost:9000/settlements" {
		t.Fatalf("SettlementWebhookURL = %q", cfg.SettlementWebhookURL)
	}
	if cfg.MaxConcurrentGames != 4 {
		t.Fatalf("MaxConcurrentGames = %d, want 4", cfg.MaxConcurrentGames)
	}
}
