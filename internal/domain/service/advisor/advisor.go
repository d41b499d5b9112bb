package advisor

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/service/compare"
	"quotewise/internal/domain/value"
)

const (
	answerCacheTTL     = 5 * time.Minute
	answerCacheCleanup = 10 * time.Minute
)

// Glossary отвечает на терминологические вопросы без сравнения.
type Glossary interface {
	Answer(query string) (string, bool)
}

// Ask структурированный вопрос от транспорта. Разбор естественного
// языка в интент — забота транспорта, сюда приходит готовая структура.
type Ask struct {
	Quotes   []entity.Quote
	Question string
	Weights  value.Weights
}

// Answer ответ ассистента: текст плюс структура для интеграций.
type Answer struct {
	Text   string
	Result *entity.ComparisonResult
}

// Advisor связывает движок сравнения с транспортами: прогоняет вопрос
// через движок и превращает результат в текст. Отрендеренные ответы
// кэшируются по хэшу набора, повторный вопрос по тем же котировкам
// движок не дёргает.
type Advisor struct {
	engine   *compare.Engine
	glossary Glossary
	schema   []string
	answers  *cache.Cache
}

func NewAdvisor(engine *compare.Engine) *Advisor {
	return &Advisor{
		engine:  engine,
		answers: cache.New(answerCacheTTL, answerCacheCleanup),
	}
}

func (a *Advisor) WithGlossary(glossary Glossary) *Advisor {
	a.glossary = glossary
	return a
}

func (a *Advisor) WithSchema(attrs ...string) *Advisor {
	a.schema = attrs
	return a
}

// WithCacheTTL переопределяет время жизни кэша ответов.
func (a *Advisor) WithCacheTTL(ttl time.Duration) *Advisor {
	if ttl > 0 {
		a.answers = cache.New(ttl, answerCacheCleanup)
	}
	return a
}

// Ask отвечает на вопрос по набору котировок.
func (a *Advisor) Ask(ctx context.Context, ask Ask) (Answer, error) {
	if a.glossary != nil && len(ask.Quotes) == 0 {
		if text, ok := a.glossary.Answer(ask.Question); ok {
			return Answer{Text: text}, nil
		}
	}

	key := cacheKey(ask)
	if cached, found := a.answers.Get(key); found {
		if answer, ok := cached.(Answer); ok {
			return answer, nil
		}
	}

	result, err := a.engine.Compare(ctx, ask.Quotes, compare.Options{
		Weights: ask.Weights,
		Schema:  a.schema,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("engine.Compare: %w", err)
	}

	answer := Answer{
		Text:   renderAnswer(result),
		Result: result,
	}

	a.answers.Set(key, answer, cache.DefaultExpiration)

	return answer, nil
}

// cacheKey хэш вопроса, набора котировок и весов. Котировки внутри
// запроса неизменяемы; единицы измерения входят в хэш, иначе набор
// с валютными метками ударялся бы в кэш набора без них.
func cacheKey(ask Ask) string {
	h := fnv.New64a()

	fmt.Fprintf(h, "q:%s|", ask.Question)

	for _, q := range ask.Quotes {
		fmt.Fprintf(h, "%s|", q.ID)

		attrs := make([]string, 0, len(q.Attributes))
		for attr := range q.Attributes {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)

		for _, attr := range attrs {
			fmt.Fprintf(h, "%s=%v;", attr, q.Attributes[attr])
		}

		units := make([]string, 0, len(q.Units))
		for attr := range q.Units {
			units = append(units, attr)
		}
		sort.Strings(units)

		for _, attr := range units {
			fmt.Fprintf(h, "u:%s=%s;", attr, q.Units[attr])
		}
	}

	for _, attr := range ask.Weights.Attributes() {
		fmt.Fprintf(h, "w:%s=%v;", attr, ask.Weights[attr])
	}

	return fmt.Sprintf("%x", h.Sum64())
}
