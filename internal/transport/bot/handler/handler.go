package handler

import (
	"context"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/service/advisor"
	"quotewise/internal/domain/value"
)

type comparisonService interface {
	GetQuoteSet(ctx context.Context, id string) (*entity.QuoteSet, error)
	CompareSet(ctx context.Context, setID string, weights value.Weights) (*entity.ComparisonResult, error)
}

type advisorService interface {
	Ask(ctx context.Context, ask advisor.Ask) (advisor.Answer, error)
}

type sessionStore interface {
	BindQuoteSet(ctx context.Context, chatID int64, setID string) error
	ActiveQuoteSet(ctx context.Context, chatID int64) (string, error)
	Clear(ctx context.Context, chatID int64) error
}

type glossaryService interface {
	Answer(query string) (string, bool)
}

type Handler struct {
	comparisons comparisonService
	advisor     advisorService
	sessions    sessionStore
	glossary    glossaryService
}

func New(
	comparisons comparisonService,
	advisorService advisorService,
	sessions sessionStore,
	glossary glossaryService,
) *Handler {
	return &Handler{
		comparisons: comparisons,
		advisor:     advisorService,
		sessions:    sessions,
		glossary:    glossary,
	}
}
