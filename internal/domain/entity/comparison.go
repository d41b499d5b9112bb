package entity

import "time"

// AttributeDelta отклонение котировки от лучшей по одному атрибуту в
// процентах. Знак выровнен по направлению веса: положительное значение
// всегда читается как "хуже лучшей".
type AttributeDelta struct {
	QuoteID   string
	Attribute string
	Percent   float64
}

// ComparisonResult итог одного сравнения.
type ComparisonResult struct {
	ID     string
	Ranked []ScoredQuote
	// Best первая котировка после сортировки и тай-брейка, Worst последняя.
	Best        ScoredQuote
	Worst       ScoredQuote
	ScoreSpread float64
	Deltas      []AttributeDelta
	// Warnings веса, не совпавшие ни с одним атрибутом набора.
	Warnings  []string
	CreatedAt time.Time
}
