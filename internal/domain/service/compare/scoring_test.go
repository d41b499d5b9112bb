package compare

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
)

func normalizedQuote(id string, attrs map[string]float64) entity.NormalizedQuote {
	return entity.NormalizedQuote{ID: id, Attributes: attrs, Complete: true}
}

func TestScoreBatchMinMaxScaling(t *testing.T) {
	rq := require.New(t)

	scored, warnings, err := scoreBatch(
		[]entity.NormalizedQuote{
			normalizedQuote("cheap", map[string]float64{"price": 50}),
			normalizedQuote("mid", map[string]float64{"price": 75}),
			normalizedQuote("expensive", map[string]float64{"price": 100}),
		},
		value.Weights{"price": -1},
	)
	rq.NoError(err)
	rq.Empty(warnings)

	byID := make(map[string]entity.ScoredQuote)
	for _, sq := range scored {
		byID[sq.ID] = sq
	}

	// Отрицательный вес инвертирует шкалу: дешёвая котировка получает 1.
	rq.InDelta(1.0, byID["cheap"].Score, 1e-9)
	rq.InDelta(0.5, byID["mid"].Score, 1e-9)
	rq.InDelta(0.0, byID["expensive"].Score, 1e-9)
}

func TestScoreBatchExplanationOrderedByContribution(t *testing.T) {
	rq := require.New(t)

	scored, _, err := scoreBatch(
		[]entity.NormalizedQuote{
			normalizedQuote("a", map[string]float64{"price": 50, "rating": 5}),
			normalizedQuote("b", map[string]float64{"price": 100, "rating": 1}),
		},
		value.Weights{"price": -0.5, "rating": 1},
	)
	rq.NoError(err)

	for _, sq := range scored {
		for i := 1; i < len(sq.Explanation); i++ {
			rq.GreaterOrEqual(
				sq.Explanation[i-1].Contribution,
				sq.Explanation[i].Contribution,
			)
		}
	}
}

func TestScoreBatchDeterministic(t *testing.T) {
	rq := require.New(t)

	quotes := []entity.NormalizedQuote{
		normalizedQuote("a", map[string]float64{"price": 10, "rating": 3}),
		normalizedQuote("b", map[string]float64{"price": 20, "rating": 4}),
	}
	weights := value.Weights{"price": -1, "rating": 1}

	first, _, err := scoreBatch(quotes, weights)
	rq.NoError(err)

	second, _, err := scoreBatch(quotes, weights)
	rq.NoError(err)

	rq.Equal(first, second)
}

func TestScoreBatchRejectsZeroWeight(t *testing.T) {
	rq := require.New(t)

	_, _, err := scoreBatch(
		[]entity.NormalizedQuote{
			normalizedQuote("a", map[string]float64{"price": 10}),
		},
		value.Weights{"price": 0},
	)
	rq.Error(err)
}
