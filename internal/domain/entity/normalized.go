package entity

// NormalizedQuote котировка, приведённая к канонической схеме.
// Живёт только внутри одного запроса на сравнение.
type NormalizedQuote struct {
	ID         string
	Provider   string
	Attributes map[string]float64
	// Complete false, если хотя бы один обязательный атрибут
	// отсутствовал или был подставлен по умолчанию.
	Complete bool
}
