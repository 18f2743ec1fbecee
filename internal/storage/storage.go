// Package storage defines the persistence boundaries of the estimator.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/wizard"
)

var ErrNotFound = errors.New("not found")

// CatalogSource loads the price catalog snapshot.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (catalog.Catalog, error)
}

// SaveResult identifies a persisted estimate. Created is false when the
// submission had already been stored by an earlier attempt.
type SaveResult struct {
	EstimateID string
	LeadID     string
	Created    bool
}

// EstimateStore persists submitted estimates. SaveEstimate is idempotent on
// submissionID: retrying a submission never creates a second lead or estimate.
type EstimateStore interface {
	SaveEstimate(ctx context.Context, submissionID string, summary models.EstimateSummary) (SaveResult, error)
	GetEstimate(ctx context.Context, id string) (models.SavedEstimate, error)
	ListEstimates(ctx context.Context, query string) ([]models.EstimateListItem, error)
	LogEmail(ctx context.Context, entry models.EmailLog) error
}

// Draft mirrors an in-progress estimate between steps. It is a cache, not a source of truth.
type Draft struct {
	ID        string             `json:"id"`
	Step      wizard.Step        `json:"step"`
	Contact   models.ContactInfo `json:"contactInfo"`
	Rooms     []models.Room      `json:"rooms"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type DraftStore interface {
	CreateDraft(ctx context.Context) (Draft, error)
	GetDraft(ctx context.Context, id string) (Draft, error)
	SaveDraft(ctx context.Context, d Draft) error
	DeleteDraft(ctx context.Context, id string) error
}
