package memory

import (
	"context"
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

type documentRepository struct {
	t *table[model.Document]
}

func newDocumentRepository() *documentRepository {
	return &documentRepository{
		t: newTable("document", cloneDocument, func(x *model.Document) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	return r.t.create(doc), nil
}

func (r *documentRepository) Get(ctx context.Context, id int64) (*model.Document, error) {
	return r.t.get(id)
}

func (r *documentRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Document, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.Document) bool {
		return cfg.Match("", string(x.Status), string(x.Type)) && cfg.InWindow(x.IssuedAt)
	}), nil
}

func (r *documentRepository) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	return r.t.update(doc)
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(id)
}
