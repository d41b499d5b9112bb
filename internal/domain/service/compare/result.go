package compare

import (
	"time"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
	"quotewise/pkg/errcodes"
)

// buildResult собирает итог сравнения из отранжированного списка.
// Граница проверяется отдельно: билдер зовётся и без нормализатора
// (например из тестов), пустой вход — EmptyComparison.
func buildResult(ranked []entity.ScoredQuote, weights value.Weights, warnings []string) (*entity.ComparisonResult, error) {
	if len(ranked) == 0 {
		return nil, domain.NewError(errcodes.EmptyComparison, "nothing to compare")
	}

	best := ranked[0]
	worst := ranked[len(ranked)-1]

	return &entity.ComparisonResult{
		Ranked:      ranked,
		Best:        best,
		Worst:       worst,
		ScoreSpread: best.Score - worst.Score,
		Deltas:      attributeDeltas(ranked, best, weights),
		Warnings:    warnings,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// attributeDeltas проценты отклонения каждой котировки от лучшей по
// общим взвешенным атрибутам. Для "меньше лучше" это (other-best)/best,
// для "больше лучше" знак инвертирован — положительная дельта всегда
// читается как "хуже лучшей". Нулевое значение у лучшей пропускается.
func attributeDeltas(ranked []entity.ScoredQuote, best entity.ScoredQuote, weights value.Weights) []entity.AttributeDelta {
	var deltas []entity.AttributeDelta

	for _, q := range ranked {
		if q.ID == best.ID {
			continue
		}

		for _, attr := range weights.Attributes() {
			bestVal, ok := best.Attributes[attr]
			if !ok || bestVal == 0 {
				continue
			}

			otherVal, ok := q.Attributes[attr]
			if !ok {
				continue
			}

			percent := (otherVal - bestVal) / bestVal * 100
			if weights[attr] > 0 {
				percent = -percent
			}

			deltas = append(deltas, entity.AttributeDelta{
				QuoteID:   q.ID,
				Attribute: attr,
				Percent:   percent,
			})
		}
	}

	return deltas
}
