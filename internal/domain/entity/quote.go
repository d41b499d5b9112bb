package entity

import (
	"encoding/json"
	"time"
)

// Quote сырая котировка, как она пришла от загрузчика.
type Quote struct {
	ID         string             `json:"id" db:"id"`
	Provider   string             `json:"provider" db:"provider"`
	Attributes map[string]float64 `json:"attributes" db:"attributes"`
	// Units единица измерения атрибута (например "EUR" у price).
	// Пустая строка — значение уже в канонических единицах.
	Units map[string]string `json:"units,omitempty" db:"units"`
	// Raw исходная запись, не изменяется после загрузки.
	Raw       json.RawMessage `json:"raw,omitempty" db:"raw"`
	CreatedAt time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// QuoteSet набор котировок, загруженный одним запросом.
type QuoteSet struct {
	ID        string    `json:"id" db:"id"`
	Quotes    []Quote   `json:"quotes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
