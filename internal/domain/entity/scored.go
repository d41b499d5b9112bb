package entity

// Contribution вклад одного атрибута в итоговый балл. Чистые данные:
// текстом это станет только на стороне форматтера ответа.
type Contribution struct {
	Attribute    string
	Value        float64
	Normalized   float64
	Weight       float64
	Contribution float64
	// Available false — атрибут у котировки отсутствовал, вклад 0.
	Available bool
}

// ScoredQuote нормализованная котировка с баллом и местом.
type ScoredQuote struct {
	NormalizedQuote

	Score float64
	// Rank с единицы; равные баллы делят место (1,1,3,...).
	Rank        int
	Explanation []Contribution
}
