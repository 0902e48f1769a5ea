package model

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// Defaults applied to documents under periodic review
const (
	DefaultReviewPeriodDays = 365
	DefaultAlertLeadDays    = 30
)

// Document is a controlled SST document
type Document struct {
	ID                     int64
	Code                   string
	Title                  string
	Type                   types.DocumentType
	Category               string
	Description            string
	Version                string
	FileURL                string
	IssuedAt               time.Time
	ValidUntil             *time.Time
	RequiresPeriodicReview bool
	ReviewDate             *time.Time
	AlertLeadDays          int
	Status                 types.DocumentStatus
	PreparedBy             string
	ReviewedBy             string
	ApprovedBy             string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (x *Document) Fields() Fields {
	f := Fields{
		"title":                    x.Title,
		"type":                     x.Type,
		"file_url":                 x.FileURL,
		"issued_at":                x.IssuedAt,
		"valid_until":              x.ValidUntil,
		"requires_periodic_review": x.RequiresPeriodicReview,
		"review_date":              x.ReviewDate,
	}
	if x.AlertLeadDays != 0 {
		f["alert_lead_days"] = x.AlertLeadDays
	}
	return f
}

// ApplyReviewDefaults fills review date and lead days of a document under
// periodic review when they were left empty.
func (x *Document) ApplyReviewDefaults() {
	if !x.RequiresPeriodicReview {
		return
	}
	if x.ReviewDate == nil && !x.IssuedAt.IsZero() {
		review := x.IssuedAt.AddDate(0, 0, DefaultReviewPeriodDays)
		x.ReviewDate = &review
	}
	if x.AlertLeadDays == 0 {
		x.AlertLeadDays = DefaultAlertLeadDays
	}
}

// ReviewDue is true once the review date of a current document is within
// the alert lead time
func (x *Document) ReviewDue(now time.Time) bool {
	if !x.RequiresPeriodicReview || x.ReviewDate == nil {
		return false
	}
	if x.Status != types.DocumentStatusCurrent {
		return false
	}
	return daysBetween(now, *x.ReviewDate) <= x.AlertLeadDays
}
