package memory

import (
	"context"
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

type checklistRepository struct {
	t *table[model.Checklist]
}

func newChecklistRepository() *checklistRepository {
	return &checklistRepository{
		t: newTable("checklist", cloneChecklist, func(x *model.Checklist) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *checklistRepository) Create(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error) {
	return r.t.create(checklist), nil
}

func (r *checklistRepository) Get(ctx context.Context, id int64) (*model.Checklist, error) {
	return r.t.get(id)
}

func (r *checklistRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Checklist, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.Checklist) bool {
		return cfg.Match("", "", x.Type)
	}), nil
}

func (r *checklistRepository) Update(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error) {
	return r.t.update(checklist)
}

type inspectionRepository struct {
	t *table[model.Inspection]
}

func newInspectionRepository() *inspectionRepository {
	return &inspectionRepository{
		t: newTable("inspection", cloneInspection, func(x *model.Inspection) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *inspectionRepository) Create(ctx context.Context, inspection *model.Inspection) (*model.Inspection, error) {
	return r.t.create(inspection), nil
}

func (r *inspectionRepository) Get(ctx context.Context, id int64) (*model.Inspection, error) {
	return r.t.get(id)
}

func (r *inspectionRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Inspection, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.Inspection) bool {
		return cfg.Match(x.Area, string(x.Status), "") &&
			(cfg.ParentID() == 0 || cfg.ParentID() == x.ChecklistID) &&
			(cfg.UserID() == "" || cfg.UserID() == x.InspectorUserID) &&
			cfg.InWindow(x.ScheduledDate)
	}), nil
}

func (r *inspectionRepository) Update(ctx context.Context, inspection *model.Inspection) (*model.Inspection, error) {
	return r.t.update(inspection)
}
