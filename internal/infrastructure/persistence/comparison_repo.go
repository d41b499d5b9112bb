package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/pkg/errcodes"
)

type ComparisonRepository struct {
	db *sqlx.DB
}

// NewComparisonRepository создаёт новый экземпляр репозитория.
func NewComparisonRepository(db *sqlx.DB) *ComparisonRepository {
	return &ComparisonRepository{db: db}
}

// Create сохраняет результат сравнения. setID может быть пустым,
// если сравнивали котировки, переданные прямо в запросе.
func (r *ComparisonRepository) Create(ctx context.Context, setID string, result *entity.ComparisonResult) error {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to marshal comparison")
	}

	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var setRef *string
	if setID != "" {
		setRef = &setID
	}

	query := `INSERT INTO comparisons (id, set_id, result, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, result.ID, setRef, resultBytes, createdAt); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert comparison")
	}

	return nil
}

// GetByID возвращает сохранённое сравнение.
func (r *ComparisonRepository) GetByID(ctx context.Context, id string) (*entity.ComparisonResult, error) {
	query := `SELECT id, set_id, result, created_at FROM comparisons WHERE id = $1`

	var schema comparisonSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.ComparisonNotFound, "comparison not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get comparison")
	}

	result, err := schema.toDomain()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert comparison")
	}

	return result, nil
}

// ListBySet возвращает историю сравнений набора, новые первыми.
func (r *ComparisonRepository) ListBySet(ctx context.Context, setID string, limit int) ([]*entity.ComparisonResult, error) {
	query := `
		SELECT id, set_id, result, created_at
		FROM comparisons
		WHERE set_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var schemas []comparisonSchema
	if err := r.db.SelectContext(ctx, &schemas, query, setID, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list comparisons")
	}

	results := make([]*entity.ComparisonResult, 0, len(schemas))
	for _, s := range schemas {
		result, err := s.toDomain()
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert comparison")
		}
		results = append(results, result)
	}

	return results, nil
}
