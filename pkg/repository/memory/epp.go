package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

type eppRepository struct {
	t *table[model.EPP]
}

func newEPPRepository() *eppRepository {
	return &eppRepository{
		t: newTable("epp", cloneEPP, func(x *model.EPP) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *eppRepository) Create(ctx context.Context, epp *model.EPP) (*model.EPP, error) {
	return r.t.create(epp), nil
}

func (r *eppRepository) Get(ctx context.Context, id int64) (*model.EPP, error) {
	return r.t.get(id)
}

func (r *eppRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.EPP, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.EPP) bool {
		return cfg.Match("", "", string(x.Type))
	}), nil
}

func (r *eppRepository) Update(ctx context.Context, epp *model.EPP) (*model.EPP, error) {
	return r.t.update(epp)
}

func (r *eppRepository) AdjustStock(ctx context.Context, id int64, delta int) (*model.EPP, error) {
	return r.t.mutate(id, func(x *model.EPP) error {
		if x.Stock+delta < 0 {
			return goerr.Wrap(model.ErrInsufficientStock, "stock would become negative",
				goerr.V(model.IDKey, id),
				goerr.V(model.AvailableKey, x.Stock),
				goerr.V(model.RequestedKey, -delta))
		}
		x.Stock += delta
		return nil
	})
}

type eppAssignmentRepository struct {
	t *table[model.EPPAssignment]
}

func newEPPAssignmentRepository() *eppAssignmentRepository {
	return &eppAssignmentRepository{
		t: newTable("epp assignment", cloneAssignment, func(x *model.EPPAssignment) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *eppAssignmentRepository) Create(ctx context.Context, a *model.EPPAssignment) (*model.EPPAssignment, error) {
	return r.t.create(a), nil
}

func (r *eppAssignmentRepository) Get(ctx context.Context, id int64) (*model.EPPAssignment, error) {
	return r.t.get(id)
}

func (r *eppAssignmentRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.EPPAssignment, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.EPPAssignment) bool {
		return cfg.Match("", string(x.Status), "") &&
			(cfg.ParentID() == 0 || cfg.ParentID() == x.EPPID) &&
			(cfg.UserID() == "" || cfg.UserID() == x.UserID) &&
			cfg.InWindow(x.AssignedAt)
	}), nil
}

func (r *eppAssignmentRepository) Update(ctx context.Context, a *model.EPPAssignment) (*model.EPPAssignment, error) {
	return r.t.update(a)
}
