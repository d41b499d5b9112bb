package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/service/advisor"
	"quotewise/internal/domain/service/compare"
	"quotewise/internal/domain/service/glossary"
	"quotewise/internal/domain/value"
	"quotewise/pkg/errcodes"
	"quotewise/pkg/rest"
	"quotewise/pkg/tests"
)

type memoryRepos struct {
	sets        map[string]*entity.QuoteSet
	comparisons map[string]*entity.ComparisonResult
	history     map[string][]*entity.ComparisonResult
}

func newMemoryRepos() *memoryRepos {
	return &memoryRepos{
		sets:        map[string]*entity.QuoteSet{},
		comparisons: map[string]*entity.ComparisonResult{},
		history:     map[string][]*entity.ComparisonResult{},
	}
}

func (m *memoryRepos) CreateSet(_ context.Context, set *entity.QuoteSet) error {
	m.sets[set.ID] = set
	return nil
}

func (m *memoryRepos) GetSet(_ context.Context, id string) (*entity.QuoteSet, error) {
	set, ok := m.sets[id]
	if !ok {
		return nil, domain.NewError(errcodes.QuoteSetNotFound, "quote set not found")
	}
	return set, nil
}

func (m *memoryRepos) Create(_ context.Context, setID string, result *entity.ComparisonResult) error {
	m.comparisons[result.ID] = result
	if setID != "" {
		m.history[setID] = append([]*entity.ComparisonResult{result}, m.history[setID]...)
	}
	return nil
}

func (m *memoryRepos) GetByID(_ context.Context, id string) (*entity.ComparisonResult, error) {
	result, ok := m.comparisons[id]
	if !ok {
		return nil, domain.NewError(errcodes.ComparisonNotFound, "comparison not found")
	}
	return result, nil
}

func (m *memoryRepos) ListBySet(_ context.Context, setID string, limit int) ([]*entity.ComparisonResult, error) {
	results := m.history[setID]
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

type fakeEnqueuer struct {
	task *asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.task = task
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

func newTestAPI(t *testing.T) (tests.APIClient, *fakeEnqueuer) {
	t.Helper()

	repos := newMemoryRepos()
	enqueuer := &fakeEnqueuer{}

	engine := compare.NewEngine(value.DefaultAliasTable(), value.Weights{"price": -1.0, "rating": 1.0})
	comparisons := compare.NewService(engine, repos, repos)

	glossaryService := glossary.New([]glossary.Entry{
		{Term: "deductible", Definition: "What you pay before coverage kicks in."},
	})

	advisorService := advisor.NewAdvisor(engine).WithGlossary(glossaryService)

	srv := NewServer(
		NewQuoteServer(comparisons, enqueuer),
		NewComparisonServer(comparisons),
		NewAskServer(advisorService, comparisons),
		NewGlossaryServer(glossaryService),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return tests.NewAPIClient(ts.URL, ts.Client()), enqueuer
}

func createQuoteSet(t *testing.T, api tests.APIClient, quotes []rest.Quote) rest.QuoteSet {
	t.Helper()

	var created rest.QuoteSet

	resp, err := api.Post(context.Background(), "/v1/quotes", nil,
		rest.CreateQuoteSetRequest{Quotes: quotes}, &created, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)

	return created
}

func TestQuoteSetLifecycle(t *testing.T) {
	api, _ := newTestAPI(t)

	created := createQuoteSet(t, api, []rest.Quote{
		{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 100, "rating": 4.0}},
		{ID: "b", Provider: "Globex", Attributes: map[string]float64{"price": 80, "rating": 3.0}},
	})

	var fetched rest.QuoteSet

	resp, err := api.Get(context.Background(), "/v1/quotes/"+created.ID, nil, &fetched, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, fetched.Quotes, 2)
}

func TestGetQuoteSet_NotFound(t *testing.T) {
	api, _ := newTestAPI(t)

	var errResp rest.Error

	resp, err := api.Get(context.Background(), "/v1/quotes/missing", nil, nil, &errResp)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, rest.ErrorCode(errcodes.QuoteSetNotFound.String()), errResp.Code)
}

func TestPostComparisons_InlineQuotes(t *testing.T) {
	api, _ := newTestAPI(t)

	var result rest.ComparisonResult

	resp, err := api.Post(context.Background(), "/v1/comparisons", nil, rest.ComparisonRequest{
		Quotes: []rest.Quote{
			{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 100}},
			{ID: "b", Provider: "Globex", Attributes: map[string]float64{"price": 80}},
		},
		Weights: map[string]float64{"price": -1.0},
	}, &result, nil)

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "b", result.BestID)
	assert.Len(t, result.Ranked, 2)
	assert.Equal(t, 1, result.Ranked[0].Rank)
}

func TestPostComparisons_BySetID(t *testing.T) {
	api, _ := newTestAPI(t)

	created := createQuoteSet(t, api, []rest.Quote{
		{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 100}},
		{ID: "b", Provider: "Globex", Attributes: map[string]float64{"price": 80}},
	})

	var result rest.ComparisonResult

	resp, err := api.Post(context.Background(), "/v1/comparisons", nil,
		rest.ComparisonRequest{SetID: created.ID}, &result, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "b", result.BestID)

	var fetched rest.ComparisonResult

	resp, err = api.Get(context.Background(), "/v1/comparisons/"+result.ID, nil, &fetched, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, result.BestID, fetched.BestID)
}

func TestGetComparisons_HistoryBySet(t *testing.T) {
	api, _ := newTestAPI(t)

	created := createQuoteSet(t, api, []rest.Quote{
		{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 100}},
		{ID: "b", Provider: "Globex", Attributes: map[string]float64{"price": 80}},
	})

	var result rest.ComparisonResult

	resp, err := api.Post(context.Background(), "/v1/comparisons", nil,
		rest.ComparisonRequest{SetID: created.ID}, &result, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []rest.ComparisonResult

	resp, err = api.Get(context.Background(), "/v1/comparisons?setId="+created.ID, nil, &history, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, history, 1)
	assert.Equal(t, result.ID, history[0].ID)

	var errResp rest.Error

	resp, err = api.Get(context.Background(), "/v1/comparisons", nil, nil, &errResp)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostComparisons_InvalidWeights(t *testing.T) {
	api, _ := newTestAPI(t)

	var errResp rest.Error

	resp, err := api.Post(context.Background(), "/v1/comparisons", nil, rest.ComparisonRequest{
		Quotes: []rest.Quote{
			{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 100}},
			{ID: "b", Provider: "Globex", Attributes: map[string]float64{"price": 80}},
		},
		Weights: map[string]float64{"price": 0},
	}, nil, &errResp)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, rest.ErrorCode(errcodes.InvalidWeights.String()), errResp.Code)
}

func TestPostAsk(t *testing.T) {
	api, _ := newTestAPI(t)

	var response rest.AskResponse

	resp, err := api.Post(context.Background(), "/v1/ask", nil, rest.AskRequest{
		Question: "which plan is the best value?",
		Quotes: []rest.Quote{
			{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 100, "rating": 4.0}},
			{ID: "b", Provider: "Globex", Attributes: map[string]float64{"price": 80, "rating": 3.0}},
		},
	}, &response, nil)

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, response.Answer)
	require.NotNil(t, response.Comparison)
	assert.NotEmpty(t, response.Comparison.BestID)
}

func TestPostAsk_BySetID(t *testing.T) {
	api, _ := newTestAPI(t)

	created := createQuoteSet(t, api, []rest.Quote{
		{ID: "a", Provider: "Acme", Attributes: map[string]float64{"price": 100, "rating": 4.0}},
		{ID: "b", Provider: "Globex", Attributes: map[string]float64{"price": 80, "rating": 3.0}},
	})

	var response rest.AskResponse

	resp, err := api.Post(context.Background(), "/v1/ask", nil, rest.AskRequest{
		SetID:    created.ID,
		Question: "what should I pick?",
	}, &response, nil)

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, response.Answer)
}

func TestGetGlossary(t *testing.T) {
	api, _ := newTestAPI(t)

	var entries []rest.GlossaryEntry

	resp, err := api.Get(context.Background(), "/v1/glossary?q=deductible", nil, &entries, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, entries, 1)
	assert.Equal(t, "deductible", entries[0].Term)
}

func TestPostQuotesImport(t *testing.T) {
	api, enqueuer := newTestAPI(t)

	var accepted rest.ImportAccepted

	resp, err := api.Post(context.Background(), "/v1/quotes/import", nil, rest.ImportRequest{
		Path:   "/data/quotes.csv",
		ChatID: 42,
	}, &accepted, nil)

	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "task-1", accepted.TaskID)
	require.NotNil(t, enqueuer.task)
}
