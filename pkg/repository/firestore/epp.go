package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type eppDocument struct {
	ID             int64     `firestore:"id"`
	Code           string    `firestore:"code"`
	Name           string    `firestore:"name"`
	Description    string    `firestore:"description"`
	Type           string    `firestore:"type"`
	Brand          string    `firestore:"brand"`
	Model          string    `firestore:"model"`
	Certification  string    `firestore:"certification"`
	LifespanMonths int       `firestore:"lifespan_months"`
	MinStock       int       `firestore:"min_stock"`
	Stock          int       `firestore:"stock"`
	UnitCost       float64   `firestore:"unit_cost"`
	Supplier       string    `firestore:"supplier"`
	Active         bool      `firestore:"active"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func (d eppDocument) docID() int64        { return d.ID }
func (d *eppDocument) created() time.Time { return d.CreatedAt }
func (d *eppDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newEPPDocument(x *model.EPP) *eppDocument {
	return &eppDocument{
		ID:             x.ID,
		Code:           x.Code,
		Name:           x.Name,
		Description:    x.Description,
		Type:           string(x.Type),
		Brand:          x.Brand,
		Model:          x.Model,
		Certification:  x.Certification,
		LifespanMonths: x.LifespanMonths,
		MinStock:       x.MinStock,
		Stock:          x.Stock,
		UnitCost:       x.UnitCost,
		Supplier:       x.Supplier,
		Active:         x.Active,
		CreatedAt:      x.CreatedAt,
		UpdatedAt:      x.UpdatedAt,
	}
}

func (d *eppDocument) toModel() *model.EPP {
	return &model.EPP{
		ID:             d.ID,
		Code:           d.Code,
		Name:           d.Name,
		Description:    d.Description,
		Type:           types.EPPType(d.Type),
		Brand:          d.Brand,
		Model:          d.Model,
		Certification:  d.Certification,
		LifespanMonths: d.LifespanMonths,
		MinStock:       d.MinStock,
		Stock:          d.Stock,
		UnitCost:       d.UnitCost,
		Supplier:       d.Supplier,
		Active:         d.Active,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type eppRepository struct {
	s *entityStore[eppDocument, *eppDocument, model.EPP]
}

func newEPPRepository(client *firestore.Client, prefix string) *eppRepository {
	return &eppRepository{s: &entityStore[eppDocument, *eppDocument, model.EPP]{
		collection: newCollection[eppDocument](client, prefix, "epp_items", "epp"),
		toDoc:      newEPPDocument,
		toModel:    (*eppDocument).toModel,
		filters:    filterFields{typ: "type"},
	}}
}

func (r *eppRepository) Create(ctx context.Context, x *model.EPP) (*model.EPP, error) {
	return r.s.create(ctx, x)
}

func (r *eppRepository) Get(ctx context.Context, id int64) (*model.EPP, error) {
	return r.s.find(ctx, id)
}

func (r *eppRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.EPP, error) {
	return r.s.list(ctx, opts...)
}

func (r *eppRepository) Update(ctx context.Context, x *model.EPP) (*model.EPP, error) {
	return r.s.update(ctx, x.ID, x)
}

// AdjustStock reads and writes the stock in one transaction so concurrent
// assignments cannot overdraw it.
func (r *eppRepository) AdjustStock(ctx context.Context, id int64, delta int) (*model.EPP, error) {
	ref := r.s.doc(id)

	var updated eppDocument
	err := r.s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "epp not found", goerr.V(model.IDKey, id))
			}
			return goerr.Wrap(err, "failed to get epp", goerr.V(model.IDKey, id))
		}

		if err := snap.DataTo(&updated); err != nil {
			return goerr.Wrap(err, "failed to unmarshal epp", goerr.V(model.IDKey, id))
		}
		if updated.Stock+delta < 0 {
			return goerr.Wrap(model.ErrInsufficientStock, "stock would become negative",
				goerr.V(model.IDKey, id),
				goerr.V(model.AvailableKey, updated.Stock),
				goerr.V(model.RequestedKey, -delta))
		}

		updated.Stock += delta
		updated.UpdatedAt = time.Now().UTC()
		return tx.Update(ref, []firestore.Update{
			{Path: "stock", Value: updated.Stock},
			{Path: "updated_at", Value: updated.UpdatedAt},
		})
	})
	if err != nil {
		return nil, err
	}

	return updated.toModel(), nil
}

type eppAssignmentDocument struct {
	ID          int64      `firestore:"id"`
	EPPID       int64      `firestore:"epp_id"`
	UserID      string     `firestore:"user_id"`
	Quantity    int        `firestore:"quantity"`
	AssignedAt  time.Time  `firestore:"assigned_at"`
	ExpiresAt   *time.Time `firestore:"expires_at"`
	Status      string     `firestore:"status"`
	Notes       string     `firestore:"notes"`
	DeliveredBy string     `firestore:"delivered_by"`
	CreatedAt   time.Time  `firestore:"created_at"`
	UpdatedAt   time.Time  `firestore:"updated_at"`
}

func (d eppAssignmentDocument) docID() int64        { return d.ID }
func (d *eppAssignmentDocument) created() time.Time { return d.CreatedAt }
func (d *eppAssignmentDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newEPPAssignmentDocument(x *model.EPPAssignment) *eppAssignmentDocument {
	return &eppAssignmentDocument{
		ID:          x.ID,
		EPPID:       x.EPPID,
		UserID:      x.UserID,
		Quantity:    x.Quantity,
		AssignedAt:  x.AssignedAt,
		ExpiresAt:   x.ExpiresAt,
		Status:      string(x.Status),
		Notes:       x.Notes,
		DeliveredBy: x.DeliveredBy,
		CreatedAt:   x.CreatedAt,
		UpdatedAt:   x.UpdatedAt,
	}
}

func (d *eppAssignmentDocument) toModel() *model.EPPAssignment {
	return &model.EPPAssignment{
		ID:          d.ID,
		EPPID:       d.EPPID,
		UserID:      d.UserID,
		Quantity:    d.Quantity,
		AssignedAt:  d.AssignedAt,
		ExpiresAt:   d.ExpiresAt,
		Status:      types.AssignmentStatus(d.Status),
		Notes:       d.Notes,
		DeliveredBy: d.DeliveredBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type eppAssignmentRepository struct {
	s *entityStore[eppAssignmentDocument, *eppAssignmentDocument, model.EPPAssignment]
}

func newEPPAssignmentRepository(client *firestore.Client, prefix string) *eppAssignmentRepository {
	return &eppAssignmentRepository{s: &entityStore[eppAssignmentDocument, *eppAssignmentDocument, model.EPPAssignment]{
		collection: newCollection[eppAssignmentDocument](client, prefix, "epp_assignments", "epp assignment"),
		toDoc:      newEPPAssignmentDocument,
		toModel:    (*eppAssignmentDocument).toModel,
		filters:    assignmentFilters,
	}}
}

func (r *eppAssignmentRepository) Create(ctx context.Context, x *model.EPPAssignment) (*model.EPPAssignment, error) {
	return r.s.create(ctx, x)
}

func (r *eppAssignmentRepository) Get(ctx context.Context, id int64) (*model.EPPAssignment, error) {
	return r.s.find(ctx, id)
}

func (r *eppAssignmentRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.EPPAssignment, error) {
	return r.s.list(ctx, opts...)
}

func (r *eppAssignmentRepository) Update(ctx context.Context, x *model.EPPAssignment) (*model.EPPAssignment, error) {
	return r.s.update(ctx, x.ID, x)
}
