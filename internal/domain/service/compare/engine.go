package compare

import (
	"context"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
	"quotewise/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Options параметры одного сравнения.
type Options struct {
	// Weights знак веса кодирует направление: price обычно -1.0.
	Weights value.Weights
	// Schema обязательные атрибуты канонической схемы.
	Schema []string
	// Defaults значения для отсутствующих атрибутов схемы. Атрибут без
	// значения по умолчанию просто исключается из скоринга котировки.
	Defaults map[string]float64
}

// Engine конвейер сравнения: normalize -> score -> rank -> build.
// Чистый и синхронный, состояние одного запроса нигде не разделяется.
type Engine struct {
	aliases   value.AliasTable
	converter CurrencyConverter
	weights   value.Weights // дефолтные, когда Options.Weights не задан
}

func NewEngine(aliases value.AliasTable, defaultWeights value.Weights) *Engine {
	return &Engine{
		aliases: aliases,
		weights: defaultWeights,
	}
}

// WithConverter подключает конвертацию валютных атрибутов.
func (e *Engine) WithConverter(converter CurrencyConverter) *Engine {
	e.converter = converter
	return e
}

// DefaultWeights текущая дефолтная конфигурация весов.
func (e *Engine) DefaultWeights() value.Weights {
	return e.weights
}

// Compare прогоняет набор котировок через весь конвейер.
func (e *Engine) Compare(ctx context.Context, quotes []entity.Quote, opts Options) (*entity.ComparisonResult, error) {
	weights := opts.Weights
	if len(weights) == 0 {
		weights = e.weights
	}

	normalized, err := e.Normalize(ctx, quotes, opts)
	if err != nil {
		return nil, err
	}

	scored, warnings, err := scoreBatch(normalized, weights)
	if err != nil {
		return nil, err
	}

	for _, warning := range warnings {
		logger(ctx).Warn("scoring", "warning", warning)
	}

	result, err := buildResult(rank(scored), weights, warnings)
	if err != nil {
		return nil, err
	}

	return result, nil
}
