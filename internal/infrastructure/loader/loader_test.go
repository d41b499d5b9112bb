package loader_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotewise/internal/domain"
	"quotewise/internal/domain/value"
	"quotewise/internal/infrastructure/loader"
	"quotewise/pkg/errcodes"
)

func TestParseJSON(t *testing.T) {
	l := loader.New(value.DefaultAliasTable())

	input := `[
		{"id": "q-1", "plan": "Acme Silver", "premium": 120.5, "stars": 4.5},
		{"provider": "Globex", "cost": 99, "coverage": 12, "units": {"price": "EUR"}}
	]`

	quotes, err := l.ParseJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "q-1", quotes[0].ID)
	assert.Equal(t, "Acme Silver", quotes[0].Provider)
	assert.InDelta(t, 120.5, quotes[0].Attributes["price"], 1e-9)
	assert.InDelta(t, 4.5, quotes[0].Attributes["rating"], 1e-9)

	assert.NotEmpty(t, quotes[1].ID)
	assert.Equal(t, "Globex", quotes[1].Provider)
	assert.InDelta(t, 99, quotes[1].Attributes["price"], 1e-9)
	assert.InDelta(t, 12, quotes[1].Attributes["coverage_months"], 1e-9)
	assert.Equal(t, "EUR", quotes[1].Units["price"])
}

func TestParseJSON_DirtyNumbers(t *testing.T) {
	l := loader.New(value.DefaultAliasTable())

	input := `[{"provider": "Initech", "premium": "$1,200.50", "score": "4.5 stars"}]`

	quotes, err := l.ParseJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	assert.InDelta(t, 1200.50, quotes[0].Attributes["price"], 1e-9)
	assert.InDelta(t, 4.5, quotes[0].Attributes["rating"], 1e-9)
}

func TestParseJSON_AliasCollisionPrefersExactField(t *testing.T) {
	l := loader.New(value.DefaultAliasTable())

	// "cost" и "price" в одной записи сводятся к одному атрибуту;
	// побеждает точное имя, порядок обхода map роли не играет.
	input := `[{"provider": "Acme", "cost": 50, "price": 100}]`

	for range 200 {
		quotes, err := l.ParseJSON(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, quotes, 1)

		assert.InDelta(t, 100, quotes[0].Attributes["price"], 1e-9)
	}
}

func TestParseJSON_NoNumericAttributes(t *testing.T) {
	l := loader.New(value.DefaultAliasTable())

	_, err := l.ParseJSON(strings.NewReader(`[{"provider": "Acme", "note": "call me"}]`))
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, errcodes.MalformedQuote, code)
}

func TestParseCSV(t *testing.T) {
	l := loader.New(value.DefaultAliasTable())

	input := "plan,premium,coverage,stars\nAcme,100,24,4.2\nGlobex,80,12,3.9\n"

	quotes, err := l.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "Acme", quotes[0].Provider)
	assert.InDelta(t, 100, quotes[0].Attributes["price"], 1e-9)
	assert.InDelta(t, 24, quotes[0].Attributes["coverage_months"], 1e-9)
	assert.InDelta(t, 3.9, quotes[1].Attributes["rating"], 1e-9)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	l := loader.New(value.DefaultAliasTable())

	_, err := l.ParseCSV(strings.NewReader("plan,premium\n"))
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, errcodes.UnsupportedFormat, code)
}

func TestLoadFile_UnknownExtension(t *testing.T) {
	l := loader.New(value.DefaultAliasTable())

	_, err := l.LoadFile("quotes.xlsx")
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, errcodes.UnsupportedFormat, code)
}
