package server

import (
	"context"
	"fmt"
	"net/http"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/service/advisor"
	"quotewise/pkg/httpx/reply"
	"quotewise/pkg/httpx/req"
	"quotewise/pkg/rest"
)

type advisorService interface {
	Ask(ctx context.Context, ask advisor.Ask) (advisor.Answer, error)
}

type quoteSetGetter interface {
	GetQuoteSet(ctx context.Context, id string) (*entity.QuoteSet, error)
}

type AskServer struct {
	advisor   advisorService
	quoteSets quoteSetGetter
}

func NewAskServer(advisorService advisorService, quoteSets quoteSetGetter) AskServer {
	return AskServer{
		advisor:   advisorService,
		quoteSets: quoteSets,
	}
}

func (s AskServer) postV1Ask(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AskRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	quotes := newDomainQuotes(request.Quotes)

	if request.SetID != "" {
		set, err := s.quoteSets.GetQuoteSet(ctx, request.SetID)
		if err != nil {
			return fmt.Errorf("quoteSets.GetQuoteSet: %w", err)
		}

		quotes = set.Quotes
	}

	answer, err := s.advisor.Ask(ctx, advisor.Ask{
		Quotes:   quotes,
		Question: request.Question,
		Weights:  newDomainWeights(request.Weights),
	})
	if err != nil {
		return fmt.Errorf("advisor.Ask: %w", err)
	}

	questionsTotal.Inc()

	response := rest.AskResponse{Answer: answer.Text}

	if answer.Result != nil {
		comparison := newRESTComparisonResult(answer.Result)
		response.Comparison = &comparison
	}

	reply.JSON(ctx, w, http.StatusOK, response)

	return nil
}
