package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/pkg/errcodes"
)

type QuoteSetRepository struct {
	db *sqlx.DB
}

// NewQuoteSetRepository создаёт новый экземпляр репозитория.
func NewQuoteSetRepository(db *sqlx.DB) *QuoteSetRepository {
	return &QuoteSetRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *QuoteSetRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// CreateSet сохраняет набор котировок атомарно.
func (r *QuoteSetRepository) CreateSet(ctx context.Context, set *entity.QuoteSet) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		createdAt := set.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		query := `INSERT INTO quote_sets (id, created_at) VALUES ($1, $2)`

		if _, err := tx.ExecContext(ctx, query, set.ID, createdAt); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert quote set")
		}

		for i := range set.Quotes {
			if err := r.createQuoteTx(ctx, tx, set.ID, &set.Quotes[i]); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError,
					fmt.Sprintf("failed at index %d", i))
			}
		}

		return nil
	})
}

// GetSet возвращает набор котировок по идентификатору.
func (r *QuoteSetRepository) GetSet(ctx context.Context, id string) (*entity.QuoteSet, error) {
	var createdAt time.Time

	query := `SELECT created_at FROM quote_sets WHERE id = $1`

	if err := r.db.GetContext(ctx, &createdAt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.QuoteSetNotFound, "quote set not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get quote set")
	}

	quotesQuery := `
		SELECT id, set_id, provider, attributes, units, raw, created_at
		FROM quotes
		WHERE set_id = $1
		ORDER BY id`

	var schemas []quoteSchema
	if err := r.db.SelectContext(ctx, &schemas, quotesQuery, id); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get quotes")
	}

	quotes := make([]entity.Quote, 0, len(schemas))
	for _, s := range schemas {
		quote, err := s.toDomain()
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert quote")
		}
		quotes = append(quotes, quote)
	}

	return &entity.QuoteSet{
		ID:        id,
		Quotes:    quotes,
		CreatedAt: createdAt,
	}, nil
}

// Exists проверяет наличие набора без загрузки котировок.
func (r *QuoteSetRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM quote_sets WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check quote set existence")
	}

	return exists, nil
}

// createQuoteTx — внутренний метод вставки в рамках транзакции.
func (r *QuoteSetRepository) createQuoteTx(ctx context.Context, tx *sqlx.Tx, setID string, quote *entity.Quote) error {
	attrsBytes, err := json.Marshal(quote.Attributes)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to marshal attributes")
	}

	unitsBytes, err := json.Marshal(quote.Units)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to marshal units")
	}

	createdAt := quote.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO quotes (id, set_id, provider, attributes, units, raw, created_at)
		VALUES (:id, :set_id, :provider, :attributes, :units, :raw, :created_at)`

	params := map[string]any{
		"id":         quote.ID,
		"set_id":     setID,
		"provider":   quote.Provider,
		"attributes": attrsBytes,
		"units":      unitsBytes,
		"raw":        []byte(quote.Raw),
		"created_at": createdAt,
	}

	if _, err := tx.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert quote")
	}

	return nil
}
