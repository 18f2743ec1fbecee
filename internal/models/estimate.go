package models

import "time"

// ContactInfo is collected on the first step and travels with the estimate.
type ContactInfo struct {
	ProjectName string `json:"projectName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// EstimateSummary is derived from the room list and the discount tiers. It is never edited directly.
type EstimateSummary struct {
	Subtotal       float64     `json:"subtotal"`
	VolumeDiscount float64     `json:"volumeDiscount"`
	Total          float64     `json:"total"`
	Rooms          []Room      `json:"rooms"`
	ContactInfo    ContactInfo `json:"contactInfo"`
}

const EstimateStatusPending = "pending"

// SavedEstimate is a persisted snapshot of a submitted summary.
type SavedEstimate struct {
	ID        string          `json:"id"`
	LeadID    string          `json:"leadId"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Summary   EstimateSummary `json:"summary"`
}

// EstimateListItem is the row shape used by listings.
type EstimateListItem struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	ProjectName string    `json:"projectName"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Total       float64   `json:"total"`
}

// EmailLog records one delivery attempt for an estimate.
type EmailLog struct {
	EstimateID    string `json:"estimateId"`
	Recipient     string `json:"recipient"`
	Subject       string `json:"subject"`
	TemplateName  string `json:"templateName"`
	Delivered     bool   `json:"delivered"`
	WasRedirected bool   `json:"wasRedirected"`
	Error         string `json:"error,omitempty"`
}
