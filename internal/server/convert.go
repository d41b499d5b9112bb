package server

import (
	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
	"quotewise/pkg/rest"
)

func newDomainQuote(quote rest.Quote) entity.Quote {
	return entity.Quote{
		ID:         quote.ID,
		Provider:   quote.Provider,
		Attributes: quote.Attributes,
		Units:      quote.Units,
	}
}

func newDomainQuotes(quotes []rest.Quote) []entity.Quote {
	result := make([]entity.Quote, 0, len(quotes))
	for _, quote := range quotes {
		result = append(result, newDomainQuote(quote))
	}

	return result
}

func newRESTQuote(quote entity.Quote) rest.Quote {
	return rest.Quote{
		ID:         quote.ID,
		Provider:   quote.Provider,
		Attributes: quote.Attributes,
		Units:      quote.Units,
	}
}

func newRESTQuoteSet(set *entity.QuoteSet) rest.QuoteSet {
	quotes := make([]rest.Quote, 0, len(set.Quotes))
	for _, quote := range set.Quotes {
		quotes = append(quotes, newRESTQuote(quote))
	}

	return rest.QuoteSet{
		ID:     set.ID,
		Quotes: quotes,
	}
}

func newRESTScoredQuote(quote entity.ScoredQuote) rest.ScoredQuote {
	explanation := make([]rest.Contribution, 0, len(quote.Explanation))
	for _, c := range quote.Explanation {
		explanation = append(explanation, rest.Contribution{
			Attribute:    c.Attribute,
			Value:        c.Value,
			Normalized:   c.Normalized,
			Weight:       c.Weight,
			Contribution: c.Contribution,
			Available:    c.Available,
		})
	}

	return rest.ScoredQuote{
		ID:          quote.ID,
		Provider:    quote.Provider,
		Attributes:  quote.Attributes,
		Complete:    quote.Complete,
		Score:       quote.Score,
		Rank:        quote.Rank,
		Explanation: explanation,
	}
}

func newRESTComparisonResult(result *entity.ComparisonResult) rest.ComparisonResult {
	ranked := make([]rest.ScoredQuote, 0, len(result.Ranked))
	for _, quote := range result.Ranked {
		ranked = append(ranked, newRESTScoredQuote(quote))
	}

	deltas := make([]rest.AttributeDelta, 0, len(result.Deltas))
	for _, delta := range result.Deltas {
		deltas = append(deltas, rest.AttributeDelta{
			QuoteID:   delta.QuoteID,
			Attribute: delta.Attribute,
			Percent:   delta.Percent,
		})
	}

	return rest.ComparisonResult{
		ID:          result.ID,
		Ranked:      ranked,
		BestID:      result.Best.ID,
		WorstID:     result.Worst.ID,
		ScoreSpread: result.ScoreSpread,
		Deltas:      deltas,
		Warnings:    result.Warnings,
	}
}

func newDomainWeights(weights map[string]float64) value.Weights {
	if len(weights) == 0 {
		return nil
	}

	return value.Weights(weights)
}
