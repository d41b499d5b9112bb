package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Entry статья глоссария страховых терминов.
type Entry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Service отвечает на вопросы вида "что такое франшиза" поиском по
// глоссарию. Подбор детерминированный: пересечение токенов вопроса с
// термином и определением, при равенстве — меньший термин.
type Service struct {
	entries []Entry
	tokens  []map[string]struct{}
}

func New(entries []Entry) *Service {
	tokens := make([]map[string]struct{}, len(entries))
	for i, entry := range entries {
		tokens[i] = tokenSet(entry.Term + " " + entry.Definition)
	}

	return &Service{
		entries: entries,
		tokens:  tokens,
	}
}

// Load читает глоссарий из JSON-файла (список {term, definition}).
func Load(path string) (*Service, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return New(entries), nil
}

// Lookup возвращает до k самых релевантных статей.
func (s *Service) Lookup(query string, k int) []Entry {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return nil
	}

	type match struct {
		entry Entry
		score int
	}

	var matches []match

	for i, entry := range s.entries {
		score := 0

		for token := range queryTokens {
			if _, ok := s.tokens[i][token]; ok {
				score++
			}
			// Совпадение с самим термином ценнее совпадения в тексте.
			if strings.Contains(strings.ToLower(entry.Term), token) {
				score += 2
			}
		}

		if score > 0 {
			matches = append(matches, match{entry: entry, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].entry.Term < matches[j].entry.Term
	})

	if k > len(matches) {
		k = len(matches)
	}

	result := make([]Entry, 0, k)
	for _, m := range matches[:k] {
		result = append(result, m.entry)
	}

	return result
}

// Answer отвечает определением самой релевантной статьи.
func (s *Service) Answer(query string) (string, bool) {
	hits := s.Lookup(query, 1)
	if len(hits) == 0 {
		return "", false
	}

	return fmt.Sprintf("%s: %s", hits[0].Term, hits[0].Definition), true
}

var stopWords = map[string]struct{}{ //nolint:gochecknoglobals
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "what": {},
	"whats": {}, "mean": {}, "means": {}, "of": {}, "in": {}, "to": {},
	"my": {}, "me": {}, "do": {}, "does": {}, "explain": {},
}

func tokenSet(s string) map[string]struct{} {
	tokens := make(map[string]struct{})

	for _, field := range strings.Fields(strings.ToLower(s)) {
		token := strings.Trim(field, ".,!?;:\"'()")
		if token == "" {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}

		tokens[token] = struct{}{}
	}

	return tokens
}
