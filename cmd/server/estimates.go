package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/paintpro/internal/export"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/storage"
)

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.estimates.ListEstimates(r.Context(), query)
	if err != nil {
		s.logger.Error("list estimates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "estimates_unavailable", "Could not load estimates.")
		return
	}
	if items == nil {
		items = make([]models.EstimateListItem, 0)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) loadEstimate(w http.ResponseWriter, r *http.Request) (models.SavedEstimate, bool) {
	id := chi.URLParam(r, "estimateID")
	est, err := s.estimates.GetEstimate(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Estimate not found.")
			return models.SavedEstimate{}, false
		}
		s.logger.Error("load estimate failed", "estimate_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "estimates_unavailable", "Could not load the estimate.")
		return models.SavedEstimate{}, false
	}
	return est, true
}

// document renders est against the current catalog. Without a catalog the
// document falls back to stored ids and built-in labels.
func (s *server) document(r *http.Request, est models.SavedEstimate) export.Document {
	return export.Build(est, s.catalogOrEmpty(r))
}

func (s *server) handleEstimateGet(w http.ResponseWriter, r *http.Request) {
	est, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (s *server) handleEstimateText(w http.ResponseWriter, r *http.Request) {
	est, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Text(s.document(r, est))))
}

func (s *server) handleEstimateXLSX(w http.ResponseWriter, r *http.Request) {
	est, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	body, err := export.XLSX(s.document(r, est))
	if err != nil {
		s.logger.Error("xlsx export failed", "estimate_id", est.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "export_failed", "Could not build the spreadsheet.")
		return
	}
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "estimate-"+est.ID+".xlsx", body)
}

func (s *server) handleEstimatePDF(w http.ResponseWriter, r *http.Request) {
	est, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	body, err := export.PDF(s.document(r, est))
	if err != nil {
		s.logger.Error("pdf export failed", "estimate_id", est.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "export_failed", "Could not build the PDF.")
		return
	}
	writeFile(w, "application/pdf", "estimate-"+est.ID+".pdf", body)
}
