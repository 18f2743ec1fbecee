package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/storage"
)

const listLimit = 200

// SaveEstimate stores the lead and the estimate snapshot in one transaction.
// The submission id becomes the estimate id, so a retried submission returns
// the row written by the first attempt.
func (s *Store) SaveEstimate(ctx context.Context, submissionID string, summary models.EstimateSummary) (storage.SaveResult, error) {
	estimateID := strings.TrimSpace(submissionID)
	if estimateID == "" {
		estimateID = s.newID()
	}

	details, err := json.Marshal(summary.Rooms)
	if err != nil {
		return storage.SaveResult{}, fmt.Errorf("encode estimate rooms: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.SaveResult{}, fmt.Errorf("begin estimate transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := existingLead(ctx, tx, estimateID)
	if err != nil {
		return storage.SaveResult{}, err
	}
	if existing != "" {
		return storage.SaveResult{EstimateID: estimateID, LeadID: existing}, nil
	}

	contact := summary.ContactInfo
	leadID := s.newID()
	now := s.timestamp()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO leads (id, name, email, phone, address, project_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, leadID, contact.FullName, contact.Email, contact.Phone, contact.Address, contact.ProjectName, now); err != nil {
		return storage.SaveResult{}, fmt.Errorf("insert lead: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO estimates (id, lead_id, project_name, details_json, subtotal, volume_discount, total_cost, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, estimateID, leadID, contact.ProjectName, string(details), summary.Subtotal, summary.VolumeDiscount, summary.Total, models.EstimateStatusPending, now)
	if err != nil {
		return storage.SaveResult{}, fmt.Errorf("insert estimate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storage.SaveResult{}, fmt.Errorf("insert estimate: %w", err)
	}
	if affected == 0 {
		// A concurrent attempt won; drop our lead and report theirs.
		_ = tx.Rollback()
		lead, err := existingLead(ctx, s.db, estimateID)
		if err != nil {
			return storage.SaveResult{}, err
		}
		return storage.SaveResult{EstimateID: estimateID, LeadID: lead}, nil
	}

	if err := tx.Commit(); err != nil {
		return storage.SaveResult{}, fmt.Errorf("commit estimate transaction: %w", err)
	}

	return storage.SaveResult{EstimateID: estimateID, LeadID: leadID, Created: true}, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func existingLead(ctx context.Context, q queryRower, estimateID string) (string, error) {
	var leadID string
	err := q.QueryRowContext(ctx, `SELECT lead_id FROM estimates WHERE id = ?`, estimateID).Scan(&leadID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("check existing estimate: %w", err)
	}
	return leadID, nil
}

func (s *Store) GetEstimate(ctx context.Context, id string) (models.SavedEstimate, error) {
	var (
		est       models.SavedEstimate
		details   string
		createdAt sqlTime
		contact   models.ContactInfo
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT e.id, e.lead_id, e.status, e.created_at, e.details_json, e.subtotal, e.volume_discount, e.total_cost,
		       e.project_name, l.name, l.email, l.phone, l.address
		FROM estimates e
		JOIN leads l ON l.id = e.lead_id
		WHERE e.id = ?
	`, id).Scan(
		&est.ID,
		&est.LeadID,
		&est.Status,
		&createdAt,
		&details,
		&est.Summary.Subtotal,
		&est.Summary.VolumeDiscount,
		&est.Summary.Total,
		&contact.ProjectName,
		&contact.FullName,
		&contact.Email,
		&contact.Phone,
		&contact.Address,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SavedEstimate{}, fmt.Errorf("estimate %s: %w", id, storage.ErrNotFound)
		}
		return models.SavedEstimate{}, fmt.Errorf("query estimate: %w", err)
	}

	est.CreatedAt = createdAt.Time
	est.Summary.ContactInfo = contact
	est.Summary.Rooms = make([]models.Room, 0)
	if err := json.Unmarshal([]byte(details), &est.Summary.Rooms); err != nil {
		return models.SavedEstimate{}, fmt.Errorf("decode estimate rooms: %w", err)
	}
	return est, nil
}

// ListEstimates returns the newest estimates first, optionally filtered by a
// case-insensitive match on project name, customer name or email.
func (s *Store) ListEstimates(ctx context.Context, query string) ([]models.EstimateListItem, error) {
	sqlQuery := `
		SELECT e.id, e.created_at, e.project_name, l.name, l.email, e.total_cost
		FROM estimates e
		JOIN leads l ON l.id = e.lead_id
	`
	args := make([]any, 0, 4)
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + q + "%"
		sqlQuery += ` WHERE e.project_name LIKE ? OR l.name LIKE ? OR l.email LIKE ?`
		args = append(args, like, like, like)
	}
	sqlQuery += ` ORDER BY datetime(e.created_at) DESC, e.id DESC LIMIT ?`
	args = append(args, listLimit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	items := make([]models.EstimateListItem, 0)
	for rows.Next() {
		var (
			item      models.EstimateListItem
			createdAt sqlTime
		)
		if err := rows.Scan(&item.ID, &createdAt, &item.ProjectName, &item.FullName, &item.Email, &item.Total); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		item.CreatedAt = createdAt.Time
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}
	return items, nil
}

func (s *Store) LogEmail(ctx context.Context, entry models.EmailLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO email_logs (estimate_id, recipient, subject, template_name, delivered, was_redirected, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.EstimateID, entry.Recipient, entry.Subject, entry.TemplateName, entry.Delivered, entry.WasRedirected, entry.Error, s.timestamp())
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

// EmailLogs returns the delivery attempts recorded for an estimate, oldest first.
func (s *Store) EmailLogs(ctx context.Context, estimateID string) ([]models.EmailLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT estimate_id, recipient, subject, template_name, delivered, was_redirected, error
		FROM email_logs
		WHERE estimate_id = ?
		ORDER BY id
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("query email logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.EmailLog, 0)
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.EstimateID, &l.Recipient, &l.Subject, &l.TemplateName, &l.Delivered, &l.WasRedirected, &l.Error); err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email logs: %w", err)
	}
	return logs, nil
}
