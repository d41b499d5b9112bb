package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTPServer
	Probe    Probe
	Metrics  Metrics
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Engine   Engine
	Rates    Rates
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"quotewise"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
