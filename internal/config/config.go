package config

import (
	"log"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBDSN      string `env:"DB_DSN" envDefault:"procurement.db"`
	LogFile    string `env:"LOG_FILE" envDefault:""`
	SMTPAddr   string `env:"SMTP_ADDR" envDefault:""` // host:port; empty disables real delivery
	SMTPFrom   string `env:"SMTP_FROM" envDefault:"noreply@procurement.local"`
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@procurement.local"`
}

func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s SMTP_ADDR=%s", cfg.Port, cfg.DBDSN, cfg.SMTPAddr)
	return cfg
}
