package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/paintpro/internal/geocode"
)

// handleAddressSuggestions never fails the form: a broken lookup answers
// 200 with no suggestions and degraded set, so the address stays free text.
func (s *server) handleAddressSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	clientKey := strings.TrimSpace(r.URL.Query().Get("client"))
	if clientKey == "" {
		clientKey = r.RemoteAddr
	}

	res, err := s.geocoder.Suggest(r.Context(), clientKey, query)
	switch {
	case errors.Is(err, geocode.ErrSuperseded):
		s.metrics.GeocodeResult("superseded")
	case err != nil:
		s.metrics.GeocodeResult("degraded")
		s.logger.Warn("address suggestions degraded",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	case len([]rune(strings.TrimSpace(query))) < geocode.MinQueryLength:
		// too short to look up
	default:
		s.metrics.GeocodeResult("ok")
	}

	if res.Suggestions == nil {
		res.Suggestions = []geocode.Suggestion{}
	}
	writeJSON(w, http.StatusOK, res)
}
