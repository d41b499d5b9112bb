package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quotewise/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/quotes", func(r chi.Router) {
				r.Post("/", handler(s.postV1Quotes))
				r.Post("/import", handler(s.postV1QuotesImport))
				r.Get("/{setId}", handler(s.getV1QuoteSet))
			})

			r.Route("/comparisons", func(r chi.Router) {
				r.Post("/", handler(s.postV1Comparisons))
				r.Get("/", handler(s.getV1Comparisons))
				r.Get("/{id}", handler(s.getV1Comparison))
			})

			r.Post("/ask", handler(s.postV1Ask))
			r.Get("/glossary", handler(s.getV1Glossary))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, toFailure(err))
		}
	}
}
