package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/estimates"
	"github.com/Simplici0/paintpro/internal/geocode"
	"github.com/Simplici0/paintpro/internal/metrics"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/rooms"
	"github.com/Simplici0/paintpro/internal/storage"
)

type submitter interface {
	Submit(ctx context.Context, submissionID string, contact models.ContactInfo, rooms []models.Room, cat catalog.Catalog) (estimates.Outcome, error)
}

var _ submitter = (*estimates.Service)(nil)

type suggester interface {
	Suggest(ctx context.Context, clientKey, query string) (geocode.Result, error)
}

type server struct {
	catalog   storage.CatalogSource
	drafts    storage.DraftStore
	estimates storage.EstimateStore
	submit    submitter
	geocoder  suggester
	metrics   *metrics.Metrics
	logger    *slog.Logger
	newID     rooms.IDFunc
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Post("/drafts", s.handleDraftCreate)
		r.Route("/drafts/{draftID}", func(r chi.Router) {
			r.Get("/", s.handleDraftGet)
			r.Delete("/", s.handleDraftDelete)
			r.Put("/contact", s.handleDraftContact)
			r.Post("/rooms", s.handleRoomAdd)
			r.Patch("/rooms/{roomID}", s.handleRoomUpdate)
			r.Delete("/rooms/{roomID}", s.handleRoomDelete)
			r.Post("/next", s.handleDraftNext)
			r.Post("/back", s.handleDraftBack)
			r.Post("/submit", s.handleDraftSubmit)
		})

		r.Get("/estimates", s.handleEstimatesList)
		r.Route("/estimates/{estimateID}", func(r chi.Router) {
			r.Get("/", s.handleEstimateGet)
			r.Get("/text", s.handleEstimateText)
			r.Get("/export.xlsx", s.handleEstimateXLSX)
			r.Get("/export.pdf", s.handleEstimatePDF)
		})

		r.Get("/address/suggestions", s.handleAddressSuggestions)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadCatalog returns the served catalog, which always offers owner-supplied paint.
func (s *server) loadCatalog(ctx context.Context) (catalog.Catalog, error) {
	c, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return catalog.Catalog{}, err
	}
	return c.WithOwnerSuppliedPaint(), nil
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.loadCatalog(r.Context())
	if err != nil {
		s.catalogUnavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) catalogUnavailable(w http.ResponseWriter, err error) {
	s.logger.Error("catalog load failed", "error", err)
	writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Pricing data is unavailable. Please try again.")
}
