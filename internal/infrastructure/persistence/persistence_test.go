package persistence_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/internal/infrastructure/persistence"
	"quotewise/pkg/dbtest"
	"quotewise/pkg/errcodes"
)

// Интеграционные тесты гоняются против реальной базы:
// TEST_PG_DSN=postgres://... go test ./internal/infrastructure/persistence/
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_init.sql"))

	return db
}

func newQuoteSet() *entity.QuoteSet {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return &entity.QuoteSet{
		ID: xid.New().String(),
		Quotes: []entity.Quote{
			{
				ID:         xid.New().String(),
				Provider:   "Acme",
				Attributes: map[string]float64{"price": 100, "rating": 4.2},
				Units:      map[string]string{"price": "EUR"},
				Raw:        json.RawMessage(`{"premium": 100}`),
				CreatedAt:  now,
			},
			{
				ID:         xid.New().String(),
				Provider:   "Globex",
				Attributes: map[string]float64{"price": 80},
				CreatedAt:  now,
			},
		},
		CreatedAt: now,
	}
}

func TestQuoteSetRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := persistence.NewQuoteSetRepository(db)

	set := newQuoteSet()
	require.NoError(t, repo.CreateSet(context.Background(), set))

	exists, err := repo.Exists(context.Background(), set.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetSet(context.Background(), set.ID)
	require.NoError(t, err)
	require.Len(t, got.Quotes, 2)

	byID := map[string]entity.Quote{}
	for _, quote := range got.Quotes {
		byID[quote.ID] = quote
	}

	first := byID[set.Quotes[0].ID]
	assert.Equal(t, "Acme", first.Provider)
	assert.InDelta(t, 100, first.Attributes["price"], 1e-9)
	assert.Equal(t, "EUR", first.Units["price"])
	assert.JSONEq(t, `{"premium": 100}`, string(first.Raw))
}

func TestGetSet_NotFound(t *testing.T) {
	db := testDB(t)
	repo := persistence.NewQuoteSetRepository(db)

	_, err := repo.GetSet(context.Background(), "missing")
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, errcodes.QuoteSetNotFound, code)
}

func TestComparisonRoundTrip(t *testing.T) {
	db := testDB(t)

	quoteRepo := persistence.NewQuoteSetRepository(db)
	comparisonRepo := persistence.NewComparisonRepository(db)

	set := newQuoteSet()
	require.NoError(t, quoteRepo.CreateSet(context.Background(), set))

	result := &entity.ComparisonResult{
		ID: xid.New().String(),
		Ranked: []entity.ScoredQuote{
			{
				NormalizedQuote: entity.NormalizedQuote{
					ID:         set.Quotes[1].ID,
					Provider:   "Globex",
					Attributes: map[string]float64{"price": 80},
				},
				Score: 1.0,
				Rank:  1,
			},
		},
		ScoreSpread: 1.0,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	result.Best = result.Ranked[0]
	result.Worst = result.Ranked[0]

	require.NoError(t, comparisonRepo.Create(context.Background(), set.ID, result))

	got, err := comparisonRepo.GetByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Best.ID, got.Best.ID)
	assert.InDelta(t, 1.0, got.ScoreSpread, 1e-9)

	history, err := comparisonRepo.ListBySet(context.Background(), set.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, result.ID, history[0].ID)
}

func TestGetComparison_NotFound(t *testing.T) {
	db := testDB(t)
	repo := persistence.NewComparisonRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, errcodes.ComparisonNotFound, code)
}
