package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	DBPath         string
	RabbitURL      string
	RabbitExchange string
	SeedOnStart    bool
	ServiceEnv     string
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		HTTPAddr:       getEnv("ORDERS_HTTP_ADDR", ":8080"),
		DBPath:         getEnv("ORDERS_DB_PATH", "./data/orders.db"),
		RabbitURL:      getEnv("RABBIT_URL", ""),
		RabbitExchange: getEnv("RABBIT_EXCHANGE", "domain_events"),
		SeedOnStart:    getEnv("SEED_ON_START", "1") == "1",
		ServiceEnv:     getEnv("SERVICE_ENV", "dev"),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
