package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/estimates"
	"github.com/Simplici0/paintpro/internal/mailer"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/pricing"
	"github.com/Simplici0/paintpro/internal/rooms"
	"github.com/Simplici0/paintpro/internal/storage"
	"github.com/Simplici0/paintpro/internal/wizard"
)

type draftView struct {
	storage.Draft
	StepName string                 `json:"stepName"`
	Summary  models.EstimateSummary `json:"summary"`
}

type roomEditRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type submitRequest struct {
	SubmissionID string `json:"submissionId"`
}

type emailView struct {
	mailer.SendResult
	Error string `json:"error,omitempty"`
}

type submitResponse struct {
	Status     string                 `json:"status"`
	EstimateID string                 `json:"estimateId"`
	Created    bool                   `json:"created"`
	Summary    models.EstimateSummary `json:"summary"`
	Email      emailView              `json:"email"`
}

func newDraftView(d storage.Draft, tiers []catalog.VolumeDiscountTier) draftView {
	if d.Rooms == nil {
		d.Rooms = make([]models.Room, 0)
	}
	return draftView{
		Draft:    d,
		StepName: d.Step.String(),
		Summary:  pricing.ComputeSummary(d.Rooms, d.Contact, tiers),
	}
}

// loadDraft writes the error response itself and reports whether to continue.
func (s *server) loadDraft(w http.ResponseWriter, r *http.Request) (storage.Draft, bool) {
	id := chi.URLParam(r, "draftID")
	d, err := s.drafts.GetDraft(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Draft not found.")
			return storage.Draft{}, false
		}
		s.logger.Error("load draft failed", "draft_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "draft_unavailable", "Could not load the draft.")
		return storage.Draft{}, false
	}
	return d, true
}

// saveAndRespond persists d and renders it with a fresh summary.
func (s *server) saveAndRespond(w http.ResponseWriter, r *http.Request, d storage.Draft, cat catalog.Catalog, status int) {
	if err := s.drafts.SaveDraft(r.Context(), d); err != nil {
		s.logger.Error("save draft failed", "draft_id", d.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "draft_unavailable", "Could not save the draft.")
		return
	}
	writeJSON(w, status, newDraftView(d, cat.VolumeDiscounts))
}

func (s *server) handleDraftCreate(w http.ResponseWriter, r *http.Request) {
	d, err := s.drafts.CreateDraft(r.Context())
	if err != nil {
		s.logger.Error("create draft failed", "error", err)
		writeError(w, http.StatusInternalServerError, "draft_unavailable", "Could not start a new estimate.")
		return
	}
	writeJSON(w, http.StatusCreated, newDraftView(d, nil))
}

func (s *server) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	cat, err := s.loadCatalog(r.Context())
	if err != nil {
		s.catalogUnavailable(w, err)
		return
	}
	d.Rooms = rooms.NewList(cat, d.Rooms, s.newID).Rooms()
	writeJSON(w, http.StatusOK, newDraftView(d, cat.VolumeDiscounts))
}

// handleDraftDelete resets the estimate. Saved estimates are not affected.
func (s *server) handleDraftDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	if err := s.drafts.DeleteDraft(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Draft not found.")
			return
		}
		s.logger.Error("delete draft failed", "draft_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "draft_unavailable", "Could not reset the estimate.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleDraftContact(w http.ResponseWriter, r *http.Request) {
	var contact models.ContactInfo
	if err := decodeJSON(w, r, &contact); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	d.Contact = wizard.NormalizeContact(contact)
	s.saveAndRespond(w, r, d, s.catalogOrEmpty(r), http.StatusOK)
}

func (s *server) handleRoomAdd(w http.ResponseWriter, r *http.Request) {
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	cat, err := s.loadCatalog(r.Context())
	if err != nil {
		s.catalogUnavailable(w, err)
		return
	}

	list := rooms.NewList(cat, d.Rooms, s.newID)
	if _, err := list.Add(); err != nil {
		if errors.Is(err, rooms.ErrIncompleteCatalog) {
			s.catalogUnavailable(w, err)
			return
		}
		writeError(w, http.StatusInternalServerError, "room_add_failed", err.Error())
		return
	}
	d.Rooms = list.Rooms()
	s.saveAndRespond(w, r, d, cat, http.StatusCreated)
}

func (s *server) handleRoomUpdate(w http.ResponseWriter, r *http.Request) {
	var req roomEditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	edit, err := rooms.DecodeEdit(strings.TrimSpace(req.Field), req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_edit", err.Error())
		return
	}

	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	cat, err := s.loadCatalog(r.Context())
	if err != nil {
		s.catalogUnavailable(w, err)
		return
	}

	list := rooms.NewList(cat, d.Rooms, s.newID)
	if _, err := list.Update(chi.URLParam(r, "roomID"), edit); err != nil {
		if errors.Is(err, rooms.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Room not found.")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "invalid_edit", err.Error())
		return
	}
	d.Rooms = list.Rooms()
	s.saveAndRespond(w, r, d, cat, http.StatusOK)
}

func (s *server) handleRoomDelete(w http.ResponseWriter, r *http.Request) {
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	cat, err := s.loadCatalog(r.Context())
	if err != nil {
		s.catalogUnavailable(w, err)
		return
	}

	list := rooms.NewList(cat, d.Rooms, s.newID)
	if err := list.Delete(chi.URLParam(r, "roomID")); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Room not found.")
		return
	}
	d.Rooms = list.Rooms()
	s.saveAndRespond(w, r, d, cat, http.StatusOK)
}

func stepValidator(d storage.Draft) wizard.Validator {
	switch d.Step {
	case wizard.StepContact:
		return wizard.ContactValidator(d.Contact)
	case wizard.StepRooms:
		return wizard.RoomsValidator(len(d.Rooms))
	}
	return nil
}

func (s *server) handleDraftNext(w http.ResponseWriter, r *http.Request) {
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	next, errs := wizard.Next(d.Step, stepValidator(d))
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	d.Step = next
	s.saveAndRespond(w, r, d, s.catalogOrEmpty(r), http.StatusOK)
}

func (s *server) handleDraftBack(w http.ResponseWriter, r *http.Request) {
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	d.Step = wizard.Back(d.Step)
	s.saveAndRespond(w, r, d, s.catalogOrEmpty(r), http.StatusOK)
}

// handleDraftSubmit saves and emails the draft's estimate. Without an explicit
// submissionId the key is derived from the draft and its priced content: a
// retry maps to the same estimate, an edited draft saves a new one.
func (s *server) handleDraftSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	cat, err := s.loadCatalog(r.Context())
	if err != nil {
		s.catalogUnavailable(w, err)
		return
	}

	submissionID := strings.TrimSpace(req.SubmissionID)
	if submissionID == "" {
		submissionID = estimates.SubmissionID(d.ID, d.Contact, d.Rooms, cat)
	}

	out, err := s.submit.Submit(r.Context(), submissionID, d.Contact, d.Rooms, cat)
	if err != nil {
		var fields wizard.FieldErrors
		if errors.As(err, &fields) {
			writeValidation(w, fields)
			return
		}
		if errors.Is(err, estimates.ErrSubmissionConflict) {
			writeError(w, http.StatusConflict, "submission_conflict", "This submission was already saved with different figures.")
			return
		}
		writeError(w, http.StatusInternalServerError, "save_failed", "Your estimate could not be saved. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Status:     out.Status,
		EstimateID: out.EstimateID,
		Created:    out.Created,
		Summary:    out.Summary,
		Email:      emailView{SendResult: out.Email, Error: out.EmailError},
	})
}

// catalogOrEmpty is used where the catalog only feeds the summary's discount tiers.
func (s *server) catalogOrEmpty(r *http.Request) catalog.Catalog {
	cat, err := s.loadCatalog(r.Context())
	if err != nil {
		s.logger.Warn("catalog load failed, summary without discounts", "error", err)
		return catalog.Catalog{}
	}
	return cat
}
