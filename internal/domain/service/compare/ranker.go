package compare

import (
	"sort"

	"quotewise/internal/domain/entity"
)

// rank сортирует по убыванию балла и проставляет места.
// Тай-брейк: сначала полные котировки, затем меньший id — порядок
// полностью детерминирован даже при точном равенстве баллов.
// Равные баллы делят место (competition ranking: 1,1,3,...).
func rank(scored []entity.ScoredQuote) []entity.ScoredQuote {
	ranked := make([]entity.ScoredQuote, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Complete != ranked[j].Complete {
			return ranked[i].Complete
		}
		return ranked[i].ID < ranked[j].ID
	})

	for i := range ranked {
		if i > 0 && ranked[i].Score == ranked[i-1].Score {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}

		ranked[i].Rank = i + 1
	}

	return ranked
}
