package compare

import (
	"context"
	"time"

	"github.com/rs/xid"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
)

// QuoteSetRepository хранит наборы котировок.
type QuoteSetRepository interface {
	CreateSet(ctx context.Context, set *entity.QuoteSet) error
	GetSet(ctx context.Context, id string) (*entity.QuoteSet, error)
}

// ComparisonRepository хранит историю сравнений.
type ComparisonRepository interface {
	Create(ctx context.Context, setID string, result *entity.ComparisonResult) error
	GetByID(ctx context.Context, id string) (*entity.ComparisonResult, error)
	ListBySet(ctx context.Context, setID string, limit int) ([]*entity.ComparisonResult, error)
}

// Service связывает движок сравнения с хранилищем: наборы получают
// идентификаторы, результаты попадают в историю.
type Service struct {
	engine      *Engine
	sets        QuoteSetRepository
	comparisons ComparisonRepository
	schema      []string
}

func NewService(engine *Engine, sets QuoteSetRepository, comparisons ComparisonRepository) *Service {
	return &Service{
		engine:      engine,
		sets:        sets,
		comparisons: comparisons,
	}
}

// WithSchema задаёт канонические атрибуты, обязательные для полноты котировки.
func (s *Service) WithSchema(schema []string) *Service {
	s.schema = schema
	return s
}

func (s *Service) Engine() *Engine {
	return s.engine
}

// CreateQuoteSet сохраняет котировки как новый набор. Котировкам без
// идентификатора он назначается здесь.
func (s *Service) CreateQuoteSet(ctx context.Context, quotes []entity.Quote) (*entity.QuoteSet, error) {
	now := time.Now().UTC()

	set := &entity.QuoteSet{
		ID:        xid.New().String(),
		Quotes:    make([]entity.Quote, len(quotes)),
		CreatedAt: now,
	}

	copy(set.Quotes, quotes)

	for i := range set.Quotes {
		if set.Quotes[i].ID == "" {
			set.Quotes[i].ID = xid.New().String()
		}

		if set.Quotes[i].CreatedAt.IsZero() {
			set.Quotes[i].CreatedAt = now
		}
	}

	if err := s.sets.CreateSet(ctx, set); err != nil {
		return nil, err
	}

	return set, nil
}

func (s *Service) GetQuoteSet(ctx context.Context, id string) (*entity.QuoteSet, error) {
	return s.sets.GetSet(ctx, id) //nolint:wrapcheck
}

// CompareSet сравнивает сохранённый набор и записывает результат в историю.
func (s *Service) CompareSet(ctx context.Context, setID string, weights value.Weights) (*entity.ComparisonResult, error) {
	set, err := s.sets.GetSet(ctx, setID)
	if err != nil {
		return nil, err
	}

	return s.compare(ctx, setID, set.Quotes, weights)
}

// CompareQuotes сравнивает котировки, переданные напрямую, без набора.
func (s *Service) CompareQuotes(ctx context.Context, quotes []entity.Quote, weights value.Weights) (*entity.ComparisonResult, error) {
	return s.compare(ctx, "", quotes, weights)
}

func (s *Service) GetComparison(ctx context.Context, id string) (*entity.ComparisonResult, error) {
	return s.comparisons.GetByID(ctx, id) //nolint:wrapcheck
}

// ListComparisons возвращает историю сравнений набора, новые первыми.
// Набор проверяется отдельно, чтобы по несуществующему id ответ был
// не пустым списком, а QuoteSetNotFound.
func (s *Service) ListComparisons(ctx context.Context, setID string, limit int) ([]*entity.ComparisonResult, error) {
	if _, err := s.sets.GetSet(ctx, setID); err != nil {
		return nil, err
	}

	return s.comparisons.ListBySet(ctx, setID, limit) //nolint:wrapcheck
}

func (s *Service) compare(ctx context.Context, setID string, quotes []entity.Quote, weights value.Weights) (*entity.ComparisonResult, error) {
	result, err := s.engine.Compare(ctx, quotes, Options{Weights: weights, Schema: s.schema})
	if err != nil {
		return nil, err
	}

	result.ID = xid.New().String()
	result.CreatedAt = time.Now().UTC()

	if err := s.comparisons.Create(ctx, setID, result); err != nil {
		return nil, err
	}

	return result, nil
}
