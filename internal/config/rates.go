package config

import "time"

type Rates struct {
	BaseURL      string        `env:"RATES_BASE_URL" envDefault:"https://api.frankfurter.dev/v1"`
	APIKey       string        `env:"RATES_API_KEY" json:"-"`
	BaseCurrency string        `env:"RATES_BASE_CURRENCY" envDefault:"USD"`
	Timeout      time.Duration `env:"RATES_TIMEOUT" envDefault:"5s"`
	CacheTTL     time.Duration `env:"RATES_CACHE_TTL" envDefault:"1h"`
}
