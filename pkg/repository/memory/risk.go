package memory

import (
	"context"
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

type riskRepository struct {
	t *table[model.Risk]
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		t: newTable("risk", cloneRisk, func(r *model.Risk) (*int64, *time.Time, *time.Time) {
			return &r.ID, &r.CreatedAt, &r.UpdatedAt
		}),
	}
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	return r.t.create(risk), nil
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	return r.t.get(id)
}

func (r *riskRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Risk, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.Risk) bool {
		return cfg.Match(x.Area, string(x.Status), string(x.Type)) &&
			(cfg.UserID() == "" || cfg.UserID() == x.OwnerUserID) &&
			cfg.InWindow(x.CreatedAt)
	}), nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	return r.t.update(risk)
}

func (r *riskRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(id)
}
