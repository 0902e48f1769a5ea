package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

type incidentDocument struct {
	ID                    int64      `firestore:"id"`
	Code                  string     `firestore:"code"`
	Type                  string     `firestore:"type"`
	OccurredAt            time.Time  `firestore:"occurred_at"`
	Area                  string     `firestore:"area"`
	Location              string     `firestore:"location"`
	Description           string     `firestore:"description"`
	AffectedName          string     `firestore:"affected_name"`
	AffectedNationalID    string     `firestore:"affected_national_id"`
	AffectedJobTitle      string     `firestore:"affected_job_title"`
	BodyPart              string     `firestore:"body_part"`
	InjuryNature          string     `firestore:"injury_nature"`
	MedicalRestDays       int        `firestore:"medical_rest_days"`
	Witnesses             string     `firestore:"witnesses"`
	ImmediateCauses       string     `firestore:"immediate_causes"`
	BasicCauses           string     `firestore:"basic_causes"`
	RootCauseAnalysis     string     `firestore:"root_cause_analysis"`
	ImmediateMeasures     string     `firestore:"immediate_measures"`
	RequiresInvestigation bool       `firestore:"requires_investigation"`
	EvidenceURLs          []string   `firestore:"evidence_urls"`
	ReportedToAuthority   bool       `firestore:"reported_to_authority"`
	ReportedToAuthorityAt *time.Time `firestore:"reported_to_authority_at"`
	ReportedBy            string     `firestore:"reported_by"`
	Status                string     `firestore:"status"`
	CreatedAt             time.Time  `firestore:"created_at"`
	UpdatedAt             time.Time  `firestore:"updated_at"`
}

func (d incidentDocument) docID() int64        { return d.ID }
func (d *incidentDocument) created() time.Time { return d.CreatedAt }
func (d *incidentDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newIncidentDocument(x *model.Incident) *incidentDocument {
	return &incidentDocument{
		ID:                    x.ID,
		Code:                  x.Code,
		Type:                  string(x.Type),
		OccurredAt:            x.OccurredAt,
		Area:                  x.Area,
		Location:              x.Location,
		Description:           x.Description,
		AffectedName:          x.Affected.Name,
		AffectedNationalID:    x.Affected.NationalID,
		AffectedJobTitle:      x.Affected.JobTitle,
		BodyPart:              x.BodyPart,
		InjuryNature:          x.InjuryNature,
		MedicalRestDays:       x.MedicalRestDays,
		Witnesses:             x.Witnesses,
		ImmediateCauses:       x.ImmediateCauses,
		BasicCauses:           x.BasicCauses,
		RootCauseAnalysis:     x.RootCauseAnalysis,
		ImmediateMeasures:     x.ImmediateMeasures,
		RequiresInvestigation: x.RequiresInvestigation,
		EvidenceURLs:          x.EvidenceURLs,
		ReportedToAuthority:   x.ReportedToAuthority,
		ReportedToAuthorityAt: x.ReportedToAuthorityAt,
		ReportedBy:            x.ReportedBy,
		Status:                string(x.Status),
		CreatedAt:             x.CreatedAt,
		UpdatedAt:             x.UpdatedAt,
	}
}

func (d *incidentDocument) toModel() *model.Incident {
	return &model.Incident{
		ID:          d.ID,
		Code:        d.Code,
		Type:        types.IncidentType(d.Type),
		OccurredAt:  d.OccurredAt,
		Area:        d.Area,
		Location:    d.Location,
		Description: d.Description,
		Affected: model.AffectedPerson{
			Name:       d.AffectedName,
			NationalID: d.AffectedNationalID,
			JobTitle:   d.AffectedJobTitle,
		},
		BodyPart:              d.BodyPart,
		InjuryNature:          d.InjuryNature,
		MedicalRestDays:       d.MedicalRestDays,
		Witnesses:             d.Witnesses,
		ImmediateCauses:       d.ImmediateCauses,
		BasicCauses:           d.BasicCauses,
		RootCauseAnalysis:     d.RootCauseAnalysis,
		ImmediateMeasures:     d.ImmediateMeasures,
		RequiresInvestigation: d.RequiresInvestigation,
		EvidenceURLs:          d.EvidenceURLs,
		ReportedToAuthority:   d.ReportedToAuthority,
		ReportedToAuthorityAt: d.ReportedToAuthorityAt,
		ReportedBy:            d.ReportedBy,
		Status:                types.IncidentStatus(d.Status),
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

type incidentRepository struct {
	s *entityStore[incidentDocument, *incidentDocument, model.Incident]
}

func newIncidentRepository(client *firestore.Client, prefix string) *incidentRepository {
	return &incidentRepository{s: &entityStore[incidentDocument, *incidentDocument, model.Incident]{
		collection: newCollection[incidentDocument](client, prefix, "incidents", "incident"),
		toDoc:      newIncidentDocument,
		toModel:    (*incidentDocument).toModel,
		filters:    incidentFilters,
	}}
}

func (r *incidentRepository) Create(ctx context.Context, x *model.Incident) (*model.Incident, error) {
	return r.s.create(ctx, x)
}

func (r *incidentRepository) Get(ctx context.Context, id int64) (*model.Incident, error) {
	return r.s.find(ctx, id)
}

func (r *incidentRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Incident, error) {
	return r.s.list(ctx, opts...)
}

func (r *incidentRepository) Update(ctx context.Context, x *model.Incident) (*model.Incident, error) {
	return r.s.update(ctx, x.ID, x)
}

type correctiveActionDocument struct {
	ID            int64      `firestore:"id"`
	IncidentID    int64      `firestore:"incident_id"`
	Description   string     `firestore:"description"`
	Type          string     `firestore:"type"`
	OwnerUserID   string     `firestore:"owner_user_id"`
	DueDate       time.Time  `firestore:"due_date"`
	ImplementedAt *time.Time `firestore:"implemented_at"`
	Status        string     `firestore:"status"`
	EvidenceURL   string     `firestore:"evidence_url"`
	Notes         string     `firestore:"notes"`
	CreatedAt     time.Time  `firestore:"created_at"`
	UpdatedAt     time.Time  `firestore:"updated_at"`
}

func (d correctiveActionDocument) docID() int64        { return d.ID }
func (d *correctiveActionDocument) created() time.Time { return d.CreatedAt }
func (d *correctiveActionDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newCorrectiveActionDocument(x *model.CorrectiveAction) *correctiveActionDocument {
	return &correctiveActionDocument{
		ID:            x.ID,
		IncidentID:    x.IncidentID,
		Description:   x.Description,
		Type:          string(x.Type),
		OwnerUserID:   x.OwnerUserID,
		DueDate:       x.DueDate,
		ImplementedAt: x.ImplementedAt,
		Status:        string(x.Status),
		EvidenceURL:   x.EvidenceURL,
		Notes:         x.Notes,
		CreatedAt:     x.CreatedAt,
		UpdatedAt:     x.UpdatedAt,
	}
}

func (d *correctiveActionDocument) toModel() *model.CorrectiveAction {
	return &model.CorrectiveAction{
		ID:            d.ID,
		IncidentID:    d.IncidentID,
		Description:   d.Description,
		Type:          types.ActionType(d.Type),
		OwnerUserID:   d.OwnerUserID,
		DueDate:       d.DueDate,
		ImplementedAt: d.ImplementedAt,
		Status:        types.ActionStatus(d.Status),
		EvidenceURL:   d.EvidenceURL,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type correctiveActionRepository struct {
	s *entityStore[correctiveActionDocument, *correctiveActionDocument, model.CorrectiveAction]
}

func newCorrectiveActionRepository(client *firestore.Client, prefix string) *correctiveActionRepository {
	return &correctiveActionRepository{s: &entityStore[correctiveActionDocument, *correctiveActionDocument, model.CorrectiveAction]{
		collection: newCollection[correctiveActionDocument](client, prefix, "corrective_actions", "corrective action"),
		toDoc:      newCorrectiveActionDocument,
		toModel:    (*correctiveActionDocument).toModel,
		filters:    actionFilters,
	}}
}

func (r *correctiveActionRepository) Create(ctx context.Context, x *model.CorrectiveAction) (*model.CorrectiveAction, error) {
	return r.s.create(ctx, x)
}

func (r *correctiveActionRepository) Get(ctx context.Context, id int64) (*model.CorrectiveAction, error) {
	return r.s.find(ctx, id)
}

func (r *correctiveActionRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.CorrectiveAction, error) {
	return r.s.list(ctx, opts...)
}

func (r *correctiveActionRepository) Update(ctx context.Context, x *model.CorrectiveAction) (*model.CorrectiveAction, error) {
	return r.s.update(ctx, x.ID, x)
}
