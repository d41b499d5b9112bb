package server

import (
	"net/http"
	"strconv"

	"quotewise/internal/domain/service/glossary"
	"quotewise/pkg/httpx/reply"
	"quotewise/pkg/rest"
)

type glossaryService interface {
	Lookup(query string, k int) []glossary.Entry
}

type GlossaryServer struct {
	glossary glossaryService
}

func NewGlossaryServer(glossaryService glossaryService) GlossaryServer {
	return GlossaryServer{
		glossary: glossaryService,
	}
}

const defaultGlossaryLimit = 3

func (s GlossaryServer) getV1Glossary(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	query := r.URL.Query().Get("q")

	limit := defaultGlossaryLimit
	if raw := r.URL.Query().Get("k"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries := s.glossary.Lookup(query, limit)

	response := make([]rest.GlossaryEntry, 0, len(entries))
	for _, entry := range entries {
		response = append(response, rest.GlossaryEntry{
			Term:       entry.Term,
			Definition: entry.Definition,
		})
	}

	reply.JSON(ctx, w, http.StatusOK, response)

	return nil
}
