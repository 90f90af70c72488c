package config

import "os"

type Config struct {
	Port          string
	DatabaseURL   string
	SecretKey     string
	JaegerAddress string
	LogFile       string
	CasbinModel   string
	CasbinPolicy  string
}

func NewConfig() *Config {
	return &Config{
		Port:          envOrDefault("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SecretKey:     os.Getenv("SECRET_KEY"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
		LogFile:       envOrDefault("LOG_FILE", "logs/homerent.log"),
		CasbinModel:   envOrDefault("CASBIN_MODEL", "./rbac_model.conf"),
		CasbinPolicy:  envOrDefault("CASBIN_POLICY", "./policy.csv"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
