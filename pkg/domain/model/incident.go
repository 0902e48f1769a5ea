package model

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// AffectedPerson is the worker involved in an incident
type AffectedPerson struct {
	Name       string
	NationalID string
	JobTitle   string
}

// Incident is a registered incident, accident or occupational disease
type Incident struct {
	ID                    int64
	Code                  string
	Type                  types.IncidentType
	OccurredAt            time.Time
	Area                  string
	Location              string
	Description           string
	Affected              AffectedPerson
	BodyPart              string
	InjuryNature          string
	MedicalRestDays       int
	Witnesses             string
	ImmediateCauses       string
	BasicCauses           string
	RootCauseAnalysis     string
	ImmediateMeasures     string
	RequiresInvestigation bool
	EvidenceURLs          []string
	ReportedToAuthority   bool
	ReportedToAuthorityAt *time.Time
	ReportedBy            string
	Status                types.IncidentStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (x *Incident) Fields() Fields {
	return Fields{
		"type":                     x.Type,
		"occurred_at":              x.OccurredAt,
		"area":                     x.Area,
		"description":              x.Description,
		"location":                 x.Location,
		"medical_rest_days":        x.MedicalRestDays,
		"reported_to_authority_at": x.ReportedToAuthorityAt,
	}
}

// CorrectiveAction is a measure taken in response to an incident
type CorrectiveAction struct {
	ID            int64
	IncidentID    int64
	Description   string
	Type          types.ActionType
	OwnerUserID   string
	DueDate       time.Time
	ImplementedAt *time.Time
	Status        types.ActionStatus
	EvidenceURL   string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (x *CorrectiveAction) Fields() Fields {
	return Fields{
		"incident_id":   x.IncidentID,
		"description":   x.Description,
		"type":          x.Type,
		"owner_user_id": x.OwnerUserID,
		"due_date":      x.DueDate,
	}
}

// IsOverdue is true when the due date has passed while work is still open
func (x *CorrectiveAction) IsOverdue(now time.Time) bool {
	return x.Status.IsOpen() && now.After(x.DueDate)
}
