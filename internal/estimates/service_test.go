package estimates

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/mailer"
	"github.com/Simplici0/paintpro/internal/metrics"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/storage"
	"github.com/Simplici0/paintpro/internal/wizard"
	"github.com/Simplici0/paintpro/pkg/logging"
)

type fakeStore struct {
	mu        sync.Mutex
	saved     map[string]models.EstimateSummary
	logs      []models.EmailLog
	saveErr   error
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]models.EstimateSummary{}}
}

func (f *fakeStore) SaveEstimate(_ context.Context, submissionID string, summary models.EstimateSummary) (storage.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return storage.SaveResult{}, f.saveErr
	}
	if _, ok := f.saved[submissionID]; ok {
		return storage.SaveResult{EstimateID: submissionID, LeadID: "lead-" + submissionID}, nil
	}
	f.saved[submissionID] = summary
	return storage.SaveResult{EstimateID: submissionID, LeadID: "lead-" + submissionID, Created: true}, nil
}

func (f *fakeStore) GetEstimate(_ context.Context, id string) (models.SavedEstimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary, ok := f.saved[id]
	if !ok {
		return models.SavedEstimate{}, storage.ErrNotFound
	}
	return models.SavedEstimate{ID: id, LeadID: "lead-" + id, Status: models.EstimateStatusPending, Summary: summary}, nil
}

func (f *fakeStore) ListEstimates(context.Context, string) ([]models.EstimateListItem, error) {
	return nil, nil
}

func (f *fakeStore) LogEmail(_ context.Context, entry models.EmailLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, entry)
	return nil
}

type fakeMailer struct {
	result mailer.SendResult
	err    error
	sent   []mailer.Message
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) (mailer.SendResult, error) {
	f.sent = append(f.sent, msg)
	return f.result, f.err
}

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		RoomTypes:  []catalog.RoomType{{ID: "kitchen", Name: "Kitchen"}},
		RoomSizes:  []catalog.RoomSize{{ID: "kitchen-avg", RoomTypeID: "kitchen", Label: "Average", BasePrice: 1100}},
		PaintTypes: []catalog.PaintType{{ID: "own", Name: catalog.OwnerSuppliedPaint, OwnerSupplied: true}},
		VolumeDiscounts: []catalog.VolumeDiscountTier{
			{Threshold: 2000, DiscountPercentage: 5},
		},
	}
}

func validContact() models.ContactInfo {
	return models.ContactInfo{
		ProjectName: "Kitchen refresh",
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-123-4567",
		Address:     "1 Main St, Seattle, Washington",
	}
}

func twoRooms() []models.Room {
	room := models.Room{ID: "r", Name: "Kitchen", RoomTypeID: "kitchen", SizeID: "kitchen-avg", PaintTypeID: "own"}
	a, b := room, room
	a.ID, b.ID = "r1", "r2"
	return []models.Room{a, b}
}

func TestSubmitSavesAndEmails(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{result: mailer.SendResult{Delivered: true, ActualRecipient: "ada@example.com"}}
	m := metrics.New()
	svc := NewService(store, mail, m, logging.Discard())

	out, err := svc.Submit(context.Background(), "sub-1", validContact(), twoRooms(), testCatalog())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if out.Status != StatusSavedAndEmailed || !out.Emailed() || !out.Created {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Summary.Subtotal != 2200 || out.Summary.VolumeDiscount != 110 || out.Summary.Total != 2090 {
		t.Fatalf("rooms were not repriced before saving: %+v", out.Summary)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mail.sent))
	}
	msg := mail.sent[0]
	if msg.To != "ada@example.com" || msg.Subject != "Your Paint Pro Estimate: Kitchen refresh" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if !strings.Contains(msg.Body, "Total: $2,090.00") {
		t.Fatalf("email body missing total:\n%s", msg.Body)
	}
	if len(store.logs) != 1 || !store.logs[0].Delivered || store.logs[0].TemplateName != mailer.TemplateName {
		t.Fatalf("unexpected email log: %+v", store.logs)
	}
}

func TestSubmitEmailFailureIsPartialSuccess(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{result: mailer.SendResult{ActualRecipient: "ada@example.com"}, err: errors.New("smtp unavailable")}
	svc := NewService(store, mail, nil, logging.Discard())

	out, err := svc.Submit(context.Background(), "sub-1", validContact(), twoRooms(), testCatalog())
	if err != nil {
		t.Fatalf("email failure must not fail the submission: %v", err)
	}
	if out.Status != StatusSavedEmailFailed || out.EstimateID != "sub-1" || out.EmailError == "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if _, ok := store.saved["sub-1"]; !ok {
		t.Fatalf("estimate should be saved")
	}
	if len(store.logs) != 1 || store.logs[0].Delivered || store.logs[0].Error == "" {
		t.Fatalf("failed attempt should be logged: %+v", store.logs)
	}
}

func TestSubmitRedirectedEmailReportsRecipient(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{result: mailer.SendResult{Delivered: true, ActualRecipient: "owner@paint-pro.io", WasRedirected: true}}
	m := metrics.New()
	svc := NewService(store, mail, m, logging.Discard())

	out, err := svc.Submit(context.Background(), "sub-1", validContact(), twoRooms(), testCatalog())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !out.Email.WasRedirected || out.Email.ActualRecipient != "owner@paint-pro.io" {
		t.Fatalf("redirect not reported: %+v", out.Email)
	}
	if store.logs[0].Recipient != "owner@paint-pro.io" || !store.logs[0].WasRedirected {
		t.Fatalf("log should record the actual recipient: %+v", store.logs[0])
	}
}

func TestSubmitValidationBlocksSideEffects(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(store, mail, nil, logging.Discard())

	contact := validContact()
	contact.Email = "nope"
	_, err := svc.Submit(context.Background(), "sub-1", contact, nil, testCatalog())

	var fields wizard.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fields["email"] != "Please enter a valid email address" || fields["rooms"] != "Please add at least one room" {
		t.Fatalf("unexpected field errors: %v", fields)
	}
	if store.saveCalls != 0 || len(mail.sent) != 0 {
		t.Fatalf("validation failure must not save or send")
	}
}

func TestSubmitSaveFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	mail := &fakeMailer{}
	svc := NewService(store, mail, nil, logging.Discard())

	_, err := svc.Submit(context.Background(), "sub-1", validContact(), twoRooms(), testCatalog())
	if !errors.Is(err, ErrSaveFailed) {
		t.Fatalf("expected ErrSaveFailed, got %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("no email should be sent when saving fails")
	}
}

func TestSubmitRetryReusesEstimate(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{result: mailer.SendResult{Delivered: true, ActualRecipient: "ada@example.com"}}
	m := metrics.New()
	svc := NewService(store, mail, m, logging.Discard())

	first, err := svc.Submit(context.Background(), "sub-1", validContact(), twoRooms(), testCatalog())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := svc.Submit(context.Background(), "sub-1", validContact(), twoRooms(), testCatalog())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if second.Created || second.EstimateID != first.EstimateID {
		t.Fatalf("retry should reuse the estimate: first=%+v second=%+v", first, second)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected a single saved estimate, got %d", len(store.saved))
	}
}

func TestSubmitReusedIDWithDifferentFiguresConflicts(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{result: mailer.SendResult{Delivered: true, ActualRecipient: "ada@example.com"}}
	svc := NewService(store, mail, nil, logging.Discard())

	if _, err := svc.Submit(context.Background(), "sub-1", validContact(), twoRooms(), testCatalog()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	more := append(twoRooms(), models.Room{ID: "r3", Name: "Kitchen", RoomTypeID: "kitchen", SizeID: "kitchen-avg", PaintTypeID: "own"})

	_, err := svc.Submit(context.Background(), "sub-1", validContact(), more, testCatalog())
	if !errors.Is(err, ErrSubmissionConflict) {
		t.Fatalf("expected ErrSubmissionConflict, got %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("conflicting submission must not send an email, sent %d", len(mail.sent))
	}
	if got := store.saved["sub-1"].Total; got != 2090 {
		t.Fatalf("stored total changed to %v", got)
	}
}

func TestSubmissionIDFollowsContent(t *testing.T) {
	cat := testCatalog()
	base := SubmissionID("draft-1", validContact(), twoRooms(), cat)
	if !strings.HasPrefix(base, "draft-1-") {
		t.Fatalf("SubmissionID = %q, want draft id prefix", base)
	}

	padded := validContact()
	padded.Email = "  ada@example.com "
	if got := SubmissionID("draft-1", padded, twoRooms(), cat); got != base {
		t.Fatalf("whitespace-only contact change moved the id: %q vs %q", got, base)
	}

	rooms := twoRooms()[:1]
	if got := SubmissionID("draft-1", validContact(), rooms, cat); got == base {
		t.Fatalf("removing a room should change the submission id")
	}
	if got := SubmissionID("draft-2", validContact(), twoRooms(), cat); got == base {
		t.Fatalf("different drafts must not share a submission id")
	}
}

func TestEmailResultLabel(t *testing.T) {
	tests := []struct {
		name   string
		result mailer.SendResult
		err    error
		want   string
	}{
		{"delivered", mailer.SendResult{Delivered: true}, nil, metrics.EmailDelivered},
		{"redirected", mailer.SendResult{Delivered: true, WasRedirected: true}, nil, metrics.EmailRedirected},
		{"not configured", mailer.SendResult{}, mailer.ErrNotConfigured, metrics.EmailNotConfigured},
		{"failed", mailer.SendResult{}, errors.New("boom"), metrics.EmailFailed},
	}
	for _, tc := range tests {
		if got := emailResultLabel(tc.result, tc.err); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
