package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

type IncidentUseCase struct {
	*base
}

func incidentPayload(x *model.Incident) model.Payload {
	return model.Payload{
		"incident_id":            x.ID,
		"code":                   x.Code,
		"type":                   string(x.Type),
		"area":                   x.Area,
		"description":            x.Description,
		"occurred_at":            x.OccurredAt,
		"affected_name":          x.Affected.Name,
		"requires_investigation": x.RequiresInvestigation,
		"reported_by":            x.ReportedBy,
	}
}

// RegisterIncident validates and stores an incident, uploads its evidence
// and announces it. Failed uploads do not block registration.
func (uc *IncidentUseCase) RegisterIncident(ctx context.Context, input *model.Incident, evidence ...Attachment) (*Created[model.Incident], error) {
	if err := uc.validate(types.RecordKindIncident, input.Fields()); err != nil {
		return nil, err
	}

	now := uc.now()
	incident := *input
	incident.ID = 0
	incident.Code = model.NewCode(model.CodePrefixIncident, now)
	incident.Status = types.IncidentStatusReported
	if incident.ReportedBy == "" {
		incident.ReportedBy = model.ActorID(ctx)
	}
	if incident.ReportedToAuthorityAt != nil {
		incident.ReportedToAuthority = true
	}

	result := &Created[model.Incident]{}
	incident.EvidenceURLs = append(incident.EvidenceURLs,
		uc.uploadAll(ctx, types.BucketIncidents, "incidents/"+incident.Code, evidence, result.warn)...)

	created, err := uc.repo.Incident().Create(ctx, &incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindIncident)).Inc()
	logging.From(ctx).Info("incident registered", "id", created.ID, "code", created.Code, "type", created.Type)

	uc.notify.fire(ctx, types.EventIncidentRegistered, incidentPayload(created))

	result.Record = created
	return result, nil
}

func (uc *IncidentUseCase) GetIncident(ctx context.Context, id int64) (*model.Incident, error) {
	incident, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V(model.IDKey, id))
	}
	return incident, nil
}

func (uc *IncidentUseCase) ListIncidents(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Incident, error) {
	incidents, err := uc.repo.Incident().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	return incidents, nil
}

// InvestigationInput carries the findings recorded with a status change
type InvestigationInput struct {
	ImmediateCauses   string
	BasicCauses       string
	RootCauseAnalysis string
	ImmediateMeasures string
}

// ChangeIncidentStatus advances the investigation. Findings, when given,
// replace the stored ones.
func (uc *IncidentUseCase) ChangeIncidentStatus(ctx context.Context, id int64, status types.IncidentStatus, findings *InvestigationInput) (*model.Incident, error) {
	incident, err := uc.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}
	if !incident.Status.CanTransitionTo(status) {
		return nil, transitionError(types.RecordKindIncident, id, incident.Status, status)
	}

	incident.Status = status
	if findings != nil {
		incident.ImmediateCauses = findings.ImmediateCauses
		incident.BasicCauses = findings.BasicCauses
		incident.RootCauseAnalysis = findings.RootCauseAnalysis
		incident.ImmediateMeasures = findings.ImmediateMeasures
	}

	updated, err := uc.repo.Incident().Update(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update incident status", goerr.V(model.IDKey, id))
	}
	return updated, nil
}

// AddCorrectiveAction records a measure against an existing incident
func (uc *IncidentUseCase) AddCorrectiveAction(ctx context.Context, input *model.CorrectiveAction) (*model.CorrectiveAction, error) {
	if err := uc.validate(types.RecordKindCorrectiveAction, input.Fields()); err != nil {
		return nil, err
	}
	if _, err := uc.GetIncident(ctx, input.IncidentID); err != nil {
		return nil, err
	}

	action := *input
	action.ID = 0
	action.Status = types.ActionStatusPending
	action.ImplementedAt = nil

	created, err := uc.repo.CorrectiveAction().Create(ctx, &action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create corrective action")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindCorrectiveAction)).Inc()
	return created, nil
}

// ListCorrectiveActions lists the actions of one incident, or all with id 0
func (uc *IncidentUseCase) ListCorrectiveActions(ctx context.Context, incidentID int64, opts ...interfaces.ListOption) ([]*model.CorrectiveAction, error) {
	if incidentID != 0 {
		opts = append(opts, interfaces.WithParentID(incidentID))
	}
	actions, err := uc.repo.CorrectiveAction().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list corrective actions")
	}
	return actions, nil
}

// ChangeActionStatus advances a corrective action. Completion stamps the
// implementation date.
func (uc *IncidentUseCase) ChangeActionStatus(ctx context.Context, id int64, status types.ActionStatus, evidenceURL, notes string) (*model.CorrectiveAction, error) {
	action, err := uc.repo.CorrectiveAction().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get corrective action", goerr.V(model.IDKey, id))
	}
	if !action.Status.CanTransitionTo(status) {
		return nil, transitionError(types.RecordKindCorrectiveAction, id, action.Status, status)
	}

	action.Status = status
	if status == types.ActionStatusCompleted {
		now := uc.now()
		action.ImplementedAt = &now
	}
	if evidenceURL != "" {
		action.EvidenceURL = evidenceURL
	}
	if notes != "" {
		action.Notes = notes
	}

	updated, err := uc.repo.CorrectiveAction().Update(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update corrective action", goerr.V(model.IDKey, id))
	}
	return updated, nil
}

// Statistics counts incidents by type, area and month
func (uc *IncidentUseCase) Statistics(ctx context.Context, opts ...interfaces.ListOption) (*model.IncidentStatistics, error) {
	incidents, err := uc.ListIncidents(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return incidentStatistics(incidents), nil
}

func incidentStatistics(incidents []*model.Incident) *model.IncidentStatistics {
	s := &model.IncidentStatistics{
		Total:  len(incidents),
		ByType: map[string]int{},
		ByArea: map[string]int{},
	}
	times := make([]time.Time, 0, len(incidents))
	for _, x := range incidents {
		s.ByType[string(x.Type)]++
		s.ByArea[x.Area]++
		times = append(times, x.OccurredAt)
	}
	s.ByMonth = model.CountByMonth(times)
	return s
}
