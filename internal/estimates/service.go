// Package estimates submits a finished estimate: validate, save, then email.
package estimates

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/export"
	"github.com/Simplici0/paintpro/internal/mailer"
	"github.com/Simplici0/paintpro/internal/metrics"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/pricing"
	"github.com/Simplici0/paintpro/internal/storage"
	"github.com/Simplici0/paintpro/internal/wizard"
)

// Submission statuses reported to the client.
const (
	StatusSavedAndEmailed  = "saved_and_emailed"
	StatusSavedEmailFailed = "saved_email_failed"
)

var (
	ErrSaveFailed = errors.New("estimate could not be saved")
	// ErrSubmissionConflict means the submission id already holds an estimate
	// with different figures.
	ErrSubmissionConflict = errors.New("submission id already used for a different estimate")
)

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) (mailer.SendResult, error)
}

// Recorder receives submission metrics. *metrics.Metrics satisfies it.
type Recorder interface {
	EstimateSaved(created bool)
	EmailResult(result string)
}

// Outcome separates "saved" from "emailed" so a failed email never hides a
// successful save.
type Outcome struct {
	EstimateID string                 `json:"estimateId"`
	Created    bool                   `json:"created"`
	Status     string                 `json:"status"`
	Summary    models.EstimateSummary `json:"summary"`
	Email      mailer.SendResult      `json:"email"`
	EmailError string                 `json:"emailError,omitempty"`
}

func (o Outcome) Emailed() bool {
	return o.Status == StatusSavedAndEmailed
}

type Service struct {
	store  storage.EstimateStore
	mail   Mailer
	rec    Recorder
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store storage.EstimateStore, mail Mailer, rec Recorder, logger *slog.Logger) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		mail:   mail,
		rec:    rec,
		logger: logger.With("component", "estimates"),
		now:    time.Now,
	}
}

// Submit validates, reprices and saves the estimate, then emails it to the
// customer. Validation problems come back as wizard.FieldErrors with nothing
// persisted. Once the save succeeds the returned error is nil; email problems
// are reported through Outcome.Status.
func (s *Service) Submit(ctx context.Context, submissionID string, contact models.ContactInfo, rooms []models.Room, cat catalog.Catalog) (Outcome, error) {
	contact = wizard.NormalizeContact(contact)
	if errs := validate(contact, len(rooms)); len(errs) > 0 {
		return Outcome{}, errs
	}

	summary := summarize(contact, rooms, cat)

	saved, err := s.store.SaveEstimate(ctx, submissionID, summary)
	if err != nil {
		s.logger.Error("save estimate failed", "submission_id", submissionID, "error", err)
		return Outcome{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	// A repeated submission reports and emails what was stored, never the
	// incoming figures.
	createdAt := s.now()
	if !saved.Created {
		stored, err := s.store.GetEstimate(ctx, saved.EstimateID)
		if err != nil {
			s.logger.Error("load stored estimate failed", "estimate_id", saved.EstimateID, "error", err)
			return Outcome{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
		if fingerprint(stored.Summary) != fingerprint(summary) {
			s.logger.Warn("submission id reused with different figures", "estimate_id", saved.EstimateID,
				"stored_total", stored.Summary.Total, "submitted_total", summary.Total)
			return Outcome{}, fmt.Errorf("%w: %s", ErrSubmissionConflict, saved.EstimateID)
		}
		summary = stored.Summary
		createdAt = stored.CreatedAt
	}
	s.rec.EstimateSaved(saved.Created)
	s.logger.Info("estimate saved", "estimate_id", saved.EstimateID, "created", saved.Created, "total", summary.Total)

	out := Outcome{
		EstimateID: saved.EstimateID,
		Created:    saved.Created,
		Summary:    summary,
	}

	msg := mailer.Message{
		To:      contact.Email,
		Subject: mailer.Subject(contact.ProjectName),
		Body: export.Text(export.Build(models.SavedEstimate{
			ID:        saved.EstimateID,
			LeadID:    saved.LeadID,
			Status:    models.EstimateStatusPending,
			CreatedAt: createdAt,
			Summary:   summary,
		}, cat)),
	}
	result, sendErr := s.mail.Send(ctx, msg)
	out.Email = result
	s.rec.EmailResult(emailResultLabel(result, sendErr))

	entry := models.EmailLog{
		EstimateID:    saved.EstimateID,
		Recipient:     result.ActualRecipient,
		Subject:       msg.Subject,
		TemplateName:  mailer.TemplateName,
		Delivered:     result.Delivered,
		WasRedirected: result.WasRedirected,
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	}
	if err := s.store.LogEmail(ctx, entry); err != nil {
		s.logger.Warn("email log write failed", "estimate_id", saved.EstimateID, "error", err)
	}

	if sendErr != nil || !result.Delivered {
		out.Status = StatusSavedEmailFailed
		if sendErr != nil {
			out.EmailError = sendErr.Error()
		}
		s.logger.Warn("estimate saved but email failed", "estimate_id", saved.EstimateID, "error", sendErr)
		return out, nil
	}

	out.Status = StatusSavedAndEmailed
	return out, nil
}

// SubmissionID derives the default idempotency key for a draft. It changes
// whenever the priced estimate changes, so a retry of the same figures maps
// to the same estimate and an edited draft submits a new one.
func SubmissionID(draftID string, contact models.ContactInfo, rooms []models.Room, cat catalog.Catalog) string {
	sum := fingerprint(summarize(wizard.NormalizeContact(contact), rooms, cat))
	return draftID + "-" + sum[:16]
}

func summarize(contact models.ContactInfo, rooms []models.Room, cat catalog.Catalog) models.EstimateSummary {
	priced := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		priced = append(priced, pricing.ComputeRoomPrice(r, cat))
	}
	return pricing.ComputeSummary(priced, contact, cat.VolumeDiscounts)
}

// fingerprint hashes the JSON form of a summary, the same form the stores
// snapshot, so a stored estimate and a resubmission compare equal.
func fingerprint(summary models.EstimateSummary) string {
	b, err := json.Marshal(summary)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func validate(contact models.ContactInfo, roomCount int) wizard.FieldErrors {
	errs := wizard.ValidateContact(contact)
	for field, msg := range wizard.ValidateRooms(roomCount) {
		if errs == nil {
			errs = wizard.FieldErrors{}
		}
		errs[field] = msg
	}
	return errs
}

func emailResultLabel(result mailer.SendResult, err error) string {
	switch {
	case errors.Is(err, mailer.ErrNotConfigured):
		return metrics.EmailNotConfigured
	case err != nil || !result.Delivered:
		return metrics.EmailFailed
	case result.WasRedirected:
		return metrics.EmailRedirected
	}
	return metrics.EmailDelivered
}

type nopRecorder struct{}

func (nopRecorder) EstimateSaved(bool)  {}
func (nopRecorder) EmailResult(string) {}
