package persistence

import (
	"encoding/json"
	"time"

	"quotewise/internal/domain/entity"
)

// quoteSchema — внутренняя структура для маппинга строки БД.
type quoteSchema struct {
	ID         string    `db:"id"`
	SetID      string    `db:"set_id"`
	Provider   string    `db:"provider"`
	Attributes []byte    `db:"attributes"`
	Units      []byte    `db:"units"`
	Raw        []byte    `db:"raw"`
	CreatedAt  time.Time `db:"created_at"`
}

func (s *quoteSchema) toDomain() (entity.Quote, error) {
	quote := entity.Quote{
		ID:        s.ID,
		Provider:  s.Provider,
		Raw:       json.RawMessage(s.Raw),
		CreatedAt: s.CreatedAt,
	}

	if len(s.Attributes) > 0 {
		if err := json.Unmarshal(s.Attributes, &quote.Attributes); err != nil {
			return entity.Quote{}, err
		}
	}

	if len(s.Units) > 0 {
		if err := json.Unmarshal(s.Units, &quote.Units); err != nil {
			return entity.Quote{}, err
		}
	}

	return quote, nil
}

// comparisonSchema — представление таблицы comparisons. Результат хранится
// целиком как JSON: сравнение неизменяемо после создания.
type comparisonSchema struct {
	ID        string    `db:"id"`
	SetID     *string   `db:"set_id"`
	Result    []byte    `db:"result"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *comparisonSchema) toDomain() (*entity.ComparisonResult, error) {
	var result entity.ComparisonResult
	if err := json.Unmarshal(s.Result, &result); err != nil {
		return nil, err
	}

	result.ID = s.ID
	result.CreatedAt = s.CreatedAt

	return &result, nil
}
