package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Weights карта атрибут -> вес. Положительный вес — "больше лучше",
// отрицательный — "меньше лучше" (цена).
type Weights map[string]float64

// Validate отклоняет нулевые и нечисловые веса.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("weights are empty")
	}

	for attr, weight := range w {
		if weight == 0 {
			return fmt.Errorf("attribute %q: weight must be non-zero", attr)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("attribute %q: weight must be finite", attr)
		}
	}

	return nil
}

// Attributes возвращает взвешенные атрибуты в стабильном порядке.
func (w Weights) Attributes() []string {
	attrs := make([]string, 0, len(w))
	for attr := range w {
		attrs = append(attrs, attr)
	}

	sort.Strings(attrs)

	return attrs
}

// ParseWeights разбирает строку формата "price:-1.0,rating:1.0"
// (значение переменной окружения ENGINE_DEFAULT_WEIGHTS).
func ParseWeights(s string) (Weights, error) {
	weights := make(Weights)

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		attr, raw, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("weight %q: want attr:value", pair)
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", pair, err)
		}

		weights[strings.TrimSpace(attr)] = weight
	}

	if err := weights.Validate(); err != nil {
		return nil, err
	}

	return weights, nil
}
