package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	// PostgresDSN is optional: without it the server runs with the audit
	// trail disabled.
	PostgresDSN string `env:"POSTGRES_DSN"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	SettlementWebhookURL string `env:"SETTLEMENT_WEBHOOK_URL"`
	SettlementQueueSize  int    `env:"SETTLEMENT_QUEUE_SIZE" envDefault:"256"`

	MaxConcurrentGames int `env:"MAX_CONCURRENT_GAMES" envDefault:"16"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
