package memory

import (
	"context"
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

type incidentRepository struct {
	t *table[model.Incident]
}

func newIncidentRepository() *incidentRepository {
	return &incidentRepository{
		t: newTable("incident", cloneIncident, func(x *model.Incident) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *incidentRepository) Create(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	return r.t.create(incident), nil
}

func (r *incidentRepository) Get(ctx context.Context, id int64) (*model.Incident, error) {
	return r.t.get(id)
}

// List filters by occurrence date for report windows
func (r *incidentRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Incident, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.Incident) bool {
		return cfg.Match(x.Area, string(x.Status), string(x.Type)) && cfg.InWindow(x.OccurredAt)
	}), nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	return r.t.update(incident)
}

type correctiveActionRepository struct {
	t *table[model.CorrectiveAction]
}

func newCorrectiveActionRepository() *correctiveActionRepository {
	return &correctiveActionRepository{
		t: newTable("corrective action", cloneAction, func(x *model.CorrectiveAction) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *correctiveActionRepository) Create(ctx context.Context, action *model.CorrectiveAction) (*model.CorrectiveAction, error) {
	return r.t.create(action), nil
}

func (r *correctiveActionRepository) Get(ctx context.Context, id int64) (*model.CorrectiveAction, error) {
	return r.t.get(id)
}

func (r *correctiveActionRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.CorrectiveAction, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.CorrectiveAction) bool {
		return cfg.Match("", string(x.Status), string(x.Type)) &&
			(cfg.ParentID() == 0 || cfg.ParentID() == x.IncidentID) &&
			(cfg.UserID() == "" || cfg.UserID() == x.OwnerUserID) &&
			cfg.InWindow(x.DueDate)
	}), nil
}

func (r *correctiveActionRepository) Update(ctx context.Context, action *model.CorrectiveAction) (*model.CorrectiveAction, error) {
	return r.t.update(action)
}
