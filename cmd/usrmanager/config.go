package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds connection settings sourced from the environment (and an
// optional .env file). Command-line flags override whatever is set here.
type Config struct {
	Driver     string `env:"USRMGR_DRIVER" envDefault:"sqlite"` // Driver selects the backend: "sqlite" or "postgres".
	DBUser     string `env:"USRMGR_DBUSER"`                     // DBUser is the PostgreSQL role name.
	DBPassword string `env:"USRMGR_DBPASS"`                     // DBPassword is the PostgreSQL role password.
	DBHost     string `env:"USRMGR_DBHOST"`                     // DBHost is the PostgreSQL host.
	DBPort     int    `env:"USRMGR_DBPORT" envDefault:"5432"`   // DBPort is the PostgreSQL port.
}

func loadConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
