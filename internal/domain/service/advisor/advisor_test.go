package advisor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/service/advisor"
	"quotewise/internal/domain/service/compare"
	"quotewise/internal/domain/service/glossary"
	"quotewise/internal/domain/value"
)

func newTestAdvisor() *advisor.Advisor {
	engine := compare.NewEngine(
		value.DefaultAliasTable(),
		value.Weights{"price": -1.0, "rating": 1.0},
	)

	return advisor.NewAdvisor(engine).WithGlossary(glossary.New([]glossary.Entry{
		{Term: "Deductible", Definition: "The amount you pay before coverage kicks in."},
	}))
}

func testQuotes() []entity.Quote {
	return []entity.Quote{
		{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 120, "rating": 4}},
		{ID: "b", Provider: "Bolt", Attributes: map[string]float64{"price": 100, "rating": 5}},
	}
}

func TestAskNamesBestQuote(t *testing.T) {
	rq := require.New(t)

	answer, err := newTestAdvisor().Ask(context.Background(), advisor.Ask{
		Quotes:   testQuotes(),
		Question: "which one is the best value?",
	})
	rq.NoError(err)

	rq.NotNil(answer.Result)
	rq.Equal("b", answer.Result.Best.ID)
	rq.Contains(answer.Text, "Bolt")
	rq.Contains(answer.Text, `quote "b"`)
}

func TestAskDeterministic(t *testing.T) {
	rq := require.New(t)

	adv := newTestAdvisor()
	ask := advisor.Ask{Quotes: testQuotes(), Question: "best?"}

	first, err := adv.Ask(context.Background(), ask)
	rq.NoError(err)

	second, err := adv.Ask(context.Background(), ask)
	rq.NoError(err)

	rq.Equal(first.Text, second.Text)
}

func TestAskGlossaryQuestionWithoutQuotes(t *testing.T) {
	rq := require.New(t)

	answer, err := newTestAdvisor().Ask(context.Background(), advisor.Ask{
		Question: "what is a deductible?",
	})
	rq.NoError(err)
	rq.Nil(answer.Result)
	rq.Contains(answer.Text, "Deductible")
}

func TestAskEmptySetWithoutGlossaryMatch(t *testing.T) {
	rq := require.New(t)

	_, err := newTestAdvisor().Ask(context.Background(), advisor.Ask{
		Question: "which plan should I pick?",
	})
	rq.Error(err)
}

type doublingConverter struct{}

func (doublingConverter) Supports(currency string) bool { return currency == "EUR" }

func (doublingConverter) Convert(_ context.Context, amount float64, _ string) (float64, error) {
	return amount * 2, nil
}

func TestAskCacheDistinguishesUnits(t *testing.T) {
	rq := require.New(t)

	engine := compare.NewEngine(value.DefaultAliasTable(), value.Weights{"price": -1}).
		WithConverter(doublingConverter{})
	adv := advisor.NewAdvisor(engine)

	usd := []entity.Quote{
		{ID: "x", Provider: "X", Attributes: map[string]float64{"price": 150}},
		{ID: "y", Provider: "Y", Attributes: map[string]float64{"price": 200}},
	}

	first, err := adv.Ask(context.Background(), advisor.Ask{Quotes: usd, Question: "best?"})
	rq.NoError(err)
	rq.Equal("x", first.Result.Best.ID)

	// Те же числа, но цена x в евро: после конвертации x дороже (300),
	// кэшированный ответ по безвалютному набору здесь не годится.
	eur := []entity.Quote{
		{ID: "x", Provider: "X", Attributes: map[string]float64{"price": 150}, Units: map[string]string{"price": "EUR"}},
		{ID: "y", Provider: "Y", Attributes: map[string]float64{"price": 200}},
	}

	second, err := adv.Ask(context.Background(), advisor.Ask{Quotes: eur, Question: "best?"})
	rq.NoError(err)
	rq.Equal("y", second.Result.Best.ID)
}

func TestAskMentionsIncompleteQuotes(t *testing.T) {
	rq := require.New(t)

	engine := compare.NewEngine(value.DefaultAliasTable(), value.Weights{"price": -1, "rating": 1})
	adv := advisor.NewAdvisor(engine).WithSchema("price", "rating")

	answer, err := adv.Ask(context.Background(), advisor.Ask{
		Quotes: []entity.Quote{
			{ID: "full", Provider: "Full", Attributes: map[string]float64{"price": 100, "rating": 4}},
			{ID: "partial", Provider: "Partial", Attributes: map[string]float64{"price": 90}},
		},
		Question: "best?",
	})
	rq.NoError(err)
	rq.Contains(answer.Text, "missing attributes")
}
