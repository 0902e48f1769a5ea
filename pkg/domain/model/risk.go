package model

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// Risk is an identified hazard with its classification
type Risk struct {
	ID              int64
	Code            string
	Description     string
	Area            string
	Process         string
	Type            types.RiskType
	Probability     types.Probability
	Severity        types.Severity
	Score           int
	Band            types.RiskBand
	ControlMeasures string
	OwnerUserID     string
	Status          types.RiskStatus
	ReviewDate      *time.Time
	CreatedBy       string
	EvidenceURLs    []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Fields returns the validator view of the risk
func (r *Risk) Fields() Fields {
	return Fields{
		"description":      r.Description,
		"area":             r.Area,
		"risk_type":        r.Type,
		"probability":      int(r.Probability),
		"severity":         int(r.Severity),
		"process":          r.Process,
		"control_measures": r.ControlMeasures,
		"review_date":      r.ReviewDate,
	}
}

// ApplyAssessment copies a classification result onto the risk
func (r *Risk) ApplyAssessment(a *RiskAssessment) {
	r.Probability = a.Probability
	r.Severity = a.Severity
	r.Score = a.Score
	r.Band = a.Band
}
