package compare

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quotewise/internal/domain/entity"
)

func scoredQuote(id string, score float64, complete bool) entity.ScoredQuote {
	return entity.ScoredQuote{
		NormalizedQuote: entity.NormalizedQuote{ID: id, Complete: complete},
		Score:           score,
	}
}

func TestRankCompetitionRanking(t *testing.T) {
	rq := require.New(t)

	ranked := rank([]entity.ScoredQuote{
		scoredQuote("c", 0.4, true),
		scoredQuote("a", 0.9, true),
		scoredQuote("b", 0.9, true),
		scoredQuote("d", 0.1, true),
	})

	rq.Equal([]string{"a", "b", "c", "d"}, ids(ranked))
	rq.Equal(1, ranked[0].Rank)
	rq.Equal(1, ranked[1].Rank)
	rq.Equal(3, ranked[2].Rank)
	rq.Equal(4, ranked[3].Rank)
}

func TestRankTieBreakCompletenessBeforeID(t *testing.T) {
	rq := require.New(t)

	// При равном балле полная котировка идёт раньше, даже с большим id.
	ranked := rank([]entity.ScoredQuote{
		scoredQuote("a", 0.5, false),
		scoredQuote("z", 0.5, true),
	})

	rq.Equal([]string{"z", "a"}, ids(ranked))
	rq.Equal(1, ranked[0].Rank)
	rq.Equal(1, ranked[1].Rank)
}

func TestRankTieBreakAscendingID(t *testing.T) {
	rq := require.New(t)

	ranked := rank([]entity.ScoredQuote{
		scoredQuote("beta", 0.5, true),
		scoredQuote("alpha", 0.5, true),
	})

	rq.Equal([]string{"alpha", "beta"}, ids(ranked))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	rq := require.New(t)

	input := []entity.ScoredQuote{
		scoredQuote("low", 0.1, true),
		scoredQuote("high", 0.9, true),
	}

	_ = rank(input)

	rq.Equal("low", input[0].ID)
	rq.Zero(input[0].Rank)
}

func ids(scored []entity.ScoredQuote) []string {
	result := make([]string, len(scored))
	for i, sq := range scored {
		result[i] = sq.ID
	}

	return result
}
