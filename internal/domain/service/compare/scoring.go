package compare

import (
	"fmt"
	"math"
	"sort"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
	"quotewise/pkg/errcodes"
)

// attrRange границы min-max шкалы, посчитанные один раз на весь набор.
type attrRange struct {
	min float64
	max float64
}

func batchRanges(quotes []entity.NormalizedQuote) map[string]attrRange {
	ranges := make(map[string]attrRange)

	for _, q := range quotes {
		for attr, val := range q.Attributes {
			r, ok := ranges[attr]
			if !ok {
				ranges[attr] = attrRange{min: val, max: val}
				continue
			}

			r.min = math.Min(r.min, val)
			r.max = math.Max(r.max, val)
			ranges[attr] = r
		}
	}

	return ranges
}

// scale приводит значение к [0,1]. Если весь набор совпадает по
// атрибуту (min == max), сигнала нет — всем 0.5.
func (r attrRange) scale(val float64) float64 {
	if r.max == r.min {
		return 0.5
	}

	return (val - r.min) / (r.max - r.min)
}

// scoreBatch считает балл каждой котировки по взвешенной сумме
// нормированных атрибутов. Для отрицательного веса направление шкалы
// инвертируется, так что вклад всегда scaled' * |вес| и баллы сравнимы
// между атрибутами. Отсутствующий атрибут даёт нулевой вклад с пометкой
// Available=false.
func scoreBatch(quotes []entity.NormalizedQuote, weights value.Weights) ([]entity.ScoredQuote, []string, error) {
	if len(quotes) == 0 {
		return nil, nil, domain.NewError(errcodes.EmptyComparison, "no quotes to score")
	}

	if err := weights.Validate(); err != nil {
		return nil, nil, domain.WrapError(err, errcodes.InvalidWeights, "invalid weights")
	}

	ranges := batchRanges(quotes)

	matched := 0

	var warnings []string

	for _, attr := range weights.Attributes() {
		if _, ok := ranges[attr]; ok {
			matched++
			continue
		}

		warnings = append(warnings, fmt.Sprintf("weighted attribute %q is absent from every quote", attr))
	}

	if matched == 0 {
		return nil, nil, domain.NewError(errcodes.ConfigurationError,
			"weights reference no attribute present in any quote")
	}

	scored := make([]entity.ScoredQuote, 0, len(quotes))

	for _, q := range quotes {
		scored = append(scored, scoreOne(q, weights, ranges))
	}

	return scored, warnings, nil
}

func scoreOne(q entity.NormalizedQuote, weights value.Weights, ranges map[string]attrRange) entity.ScoredQuote {
	var score float64

	explanation := make([]entity.Contribution, 0, len(weights))

	for _, attr := range weights.Attributes() {
		weight := weights[attr]

		r, known := ranges[attr]
		if !known {
			// Вес не совпал ни с одной котировкой, уже учтено в warnings.
			continue
		}

		val, ok := q.Attributes[attr]
		if !ok {
			explanation = append(explanation, entity.Contribution{
				Attribute: attr,
				Weight:    weight,
				Available: false,
			})
			continue
		}

		scaled := r.scale(val)
		if weight < 0 {
			scaled = 1 - scaled
		}

		contribution := scaled * math.Abs(weight)
		score += contribution

		explanation = append(explanation, entity.Contribution{
			Attribute:    attr,
			Value:        val,
			Normalized:   scaled,
			Weight:       weight,
			Contribution: contribution,
			Available:    true,
		})
	}

	// Порядок объяснения — по убыванию вклада, стабильно по имени.
	sort.SliceStable(explanation, func(i, j int) bool {
		if explanation[i].Contribution != explanation[j].Contribution {
			return explanation[i].Contribution > explanation[j].Contribution
		}
		return explanation[i].Attribute < explanation[j].Attribute
	})

	return entity.ScoredQuote{
		NormalizedQuote: q,
		Score:           score,
		Explanation:     explanation,
	}
}
