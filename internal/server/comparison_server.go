package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"quotewise/internal/domain/entity"
	"quotewise/internal/domain/value"
	"quotewise/pkg/errcodes"
	"quotewise/pkg/httpx/reply"
	"quotewise/pkg/httpx/req"
	"quotewise/pkg/rest"
)

type comparisonService interface {
	CompareSet(ctx context.Context, setID string, weights value.Weights) (*entity.ComparisonResult, error)
	CompareQuotes(ctx context.Context, quotes []entity.Quote, weights value.Weights) (*entity.ComparisonResult, error)
	GetComparison(ctx context.Context, id string) (*entity.ComparisonResult, error)
	ListComparisons(ctx context.Context, setID string, limit int) ([]*entity.ComparisonResult, error)
}

type ComparisonServer struct {
	comparisons comparisonService
}

func NewComparisonServer(comparisons comparisonService) ComparisonServer {
	return ComparisonServer{
		comparisons: comparisons,
	}
}

func (s ComparisonServer) postV1Comparisons(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ComparisonRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	weights := newDomainWeights(request.Weights)

	var (
		result *entity.ComparisonResult
		err    error
	)

	if request.SetID != "" {
		result, err = s.comparisons.CompareSet(ctx, request.SetID, weights)
	} else {
		result, err = s.comparisons.CompareQuotes(ctx, newDomainQuotes(request.Quotes), weights)
	}

	if err != nil {
		return fmt.Errorf("comparisons.Compare: %w", err)
	}

	comparisonsTotal.Inc()

	reply.JSON(ctx, w, http.StatusOK, newRESTComparisonResult(result))

	return nil
}

const defaultHistoryLimit = 20

func (s ComparisonServer) getV1Comparisons(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	setID := r.URL.Query().Get("setId")
	if setID == "" {
		return failure.NewInvalidArgumentError(
			"setId is required",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("setId query parameter is required"),
		)
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results, err := s.comparisons.ListComparisons(ctx, setID, limit)
	if err != nil {
		return fmt.Errorf("comparisons.ListComparisons: %w", err)
	}

	response := make([]rest.ComparisonResult, 0, len(results))
	for _, result := range results {
		response = append(response, newRESTComparisonResult(result))
	}

	reply.JSON(ctx, w, http.StatusOK, response)

	return nil
}

func (s ComparisonServer) getV1Comparison(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	result, err := s.comparisons.GetComparison(ctx, r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("comparisons.GetComparison: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTComparisonResult(result))

	return nil
}
