// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Quote одна котировка в запросе на сравнение.
type Quote struct {
	ID         string             `json:"id,omitempty"`
	Provider   string             `json:"provider" validate:"required"`
	Attributes map[string]float64 `json:"attributes" validate:"required,min=1"`
	Units      map[string]string  `json:"units,omitempty"`
}

// QuoteSet набор котировок, загруженный одним запросом.
type QuoteSet struct {
	ID     string  `json:"id"`
	Quotes []Quote `json:"quotes"`
}

// CreateQuoteSetRequest запрос на загрузку набора котировок.
type CreateQuoteSetRequest struct {
	Quotes []Quote `json:"quotes" validate:"required,min=1,dive"`
}

// ComparisonRequest запрос на сравнение.
type ComparisonRequest struct {
	SetID   string             `json:"setId,omitempty"`
	Quotes  []Quote            `json:"quotes,omitempty" validate:"omitempty,min=1,dive"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// Contribution вклад одного атрибута в итоговый балл.
type Contribution struct {
	Attribute    string  `json:"attribute"`
	Value        float64 `json:"value"`
	Normalized   float64 `json:"normalized"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Available    bool    `json:"available"`
}

// ScoredQuote котировка с баллом и местом в рейтинге.
type ScoredQuote struct {
	ID          string             `json:"id"`
	Provider    string             `json:"provider"`
	Attributes  map[string]float64 `json:"attributes"`
	Complete    bool               `json:"complete"`
	Score       float64            `json:"score"`
	Rank        int                `json:"rank"`
	Explanation []Contribution     `json:"explanation"`
}

// AttributeDelta отклонение котировки от лучшей по одному атрибуту, в
// процентах. Положительное значение всегда читается как "хуже лучшей".
type AttributeDelta struct {
	QuoteID   string  `json:"quoteId"`
	Attribute string  `json:"attribute"`
	Percent   float64 `json:"percent"`
}

// ComparisonResult итог сравнения.
type ComparisonResult struct {
	ID          string           `json:"id,omitempty"`
	Ranked      []ScoredQuote    `json:"ranked"`
	BestID      string           `json:"bestId"`
	WorstID     string           `json:"worstId"`
	ScoreSpread float64          `json:"scoreSpread"`
	Deltas      []AttributeDelta `json:"deltas"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// AskRequest вопрос пользователя по набору котировок.
type AskRequest struct {
	SetID    string             `json:"setId,omitempty"`
	Quotes   []Quote            `json:"quotes,omitempty" validate:"omitempty,min=1,dive"`
	Question string             `json:"question" validate:"required"`
	Weights  map[string]float64 `json:"weights,omitempty"`
}

// AskResponse ответ ассистента.
type AskResponse struct {
	Answer     string            `json:"answer"`
	Comparison *ComparisonResult `json:"comparison,omitempty"`
}

// GlossaryEntry статья глоссария.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ImportRequest запрос на фоновую загрузку файла с котировками.
type ImportRequest struct {
	Path   string `json:"path" validate:"required"`
	ChatID int64  `json:"chatId,omitempty"`
}

// ImportAccepted ответ на постановку файла в очередь загрузки.
type ImportAccepted struct {
	TaskID string `json:"taskId"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
