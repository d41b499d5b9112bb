package config

import "time"

type Engine struct {
	// DefaultWeights задаёт веса атрибутов в формате "price:-1.0,rating:1.0".
	// Отрицательный вес означает "меньше — лучше".
	DefaultWeights string        `env:"ENGINE_DEFAULT_WEIGHTS" envDefault:"price:-1.0,coverage_months:0.5,rating:1.0"`
	Schema         []string      `env:"ENGINE_SCHEMA" envSeparator:"," envDefault:"price"`
	AliasPath      string        `env:"ENGINE_ALIAS_PATH"`
	GlossaryPath   string        `env:"ENGINE_GLOSSARY_PATH" envDefault:"assets/glossary.json"`
	AnswerCacheTTL time.Duration `env:"ENGINE_ANSWER_CACHE_TTL" envDefault:"5m"`
}
