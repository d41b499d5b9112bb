package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hibiken/asynq"

	"quotewise/internal/domain/entity"
	"quotewise/internal/worker"
	"quotewise/pkg/httpx/reply"
	"quotewise/pkg/httpx/req"
	"quotewise/pkg/rest"
)

type quoteSetService interface {
	CreateQuoteSet(ctx context.Context, quotes []entity.Quote) (*entity.QuoteSet, error)
	GetQuoteSet(ctx context.Context, id string) (*entity.QuoteSet, error)
}

type importEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type QuoteServer struct {
	quoteSets quoteSetService
	enqueuer  importEnqueuer
}

func NewQuoteServer(quoteSets quoteSetService, enqueuer importEnqueuer) QuoteServer {
	return QuoteServer{
		quoteSets: quoteSets,
		enqueuer:  enqueuer,
	}
}

func (s QuoteServer) postV1Quotes(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateQuoteSetRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	set, err := s.quoteSets.CreateQuoteSet(ctx, newDomainQuotes(request.Quotes))
	if err != nil {
		return fmt.Errorf("quoteSets.CreateQuoteSet: %w", err)
	}

	quoteSetsCreated.Inc()

	reply.JSON(ctx, w, http.StatusCreated, newRESTQuoteSet(set))

	return nil
}

func (s QuoteServer) getV1QuoteSet(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	set, err := s.quoteSets.GetQuoteSet(ctx, r.PathValue("setId"))
	if err != nil {
		return fmt.Errorf("quoteSets.GetQuoteSet: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTQuoteSet(set))

	return nil
}

func (s QuoteServer) postV1QuotesImport(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ImportRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	task, err := worker.NewImportTask(request.Path, request.ChatID)
	if err != nil {
		return fmt.Errorf("worker.NewImportTask: %w", err)
	}

	info, err := s.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueuer.EnqueueContext: %w", err)
	}

	reply.JSON(ctx, w, http.StatusAccepted, rest.ImportAccepted{TaskID: info.ID})

	return nil
}
