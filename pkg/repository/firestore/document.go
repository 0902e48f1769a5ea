package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

type documentDocument struct {
	ID                     int64      `firestore:"id"`
	Code                   string     `firestore:"code"`
	Title                  string     `firestore:"title"`
	Type                   string     `firestore:"type"`
	Category               string     `firestore:"category"`
	Description            string     `firestore:"description"`
	Version                string     `firestore:"version"`
	FileURL                string     `firestore:"file_url"`
	IssuedAt               time.Time  `firestore:"issued_at"`
	ValidUntil             *time.Time `firestore:"valid_until"`
	RequiresPeriodicReview bool       `firestore:"requires_periodic_review"`
	ReviewDate             *time.Time `firestore:"review_date"`
	AlertLeadDays          int        `firestore:"alert_lead_days"`
	Status                 string     `firestore:"status"`
	PreparedBy             string     `firestore:"prepared_by"`
	ReviewedBy             string     `firestore:"reviewed_by"`
	ApprovedBy             string     `firestore:"approved_by"`
	CreatedAt              time.Time  `firestore:"created_at"`
	UpdatedAt              time.Time  `firestore:"updated_at"`
}

func (d documentDocument) docID() int64        { return d.ID }
func (d *documentDocument) created() time.Time { return d.CreatedAt }
func (d *documentDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newDocumentDocument(x *model.Document) *documentDocument {
	return &documentDocument{
		ID:                     x.ID,
		Code:                   x.Code,
		Title:                  x.Title,
		Type:                   string(x.Type),
		Category:               x.Category,
		Description:            x.Description,
		Version:                x.Version,
		FileURL:                x.FileURL,
		IssuedAt:               x.IssuedAt,
		ValidUntil:             x.ValidUntil,
		RequiresPeriodicReview: x.RequiresPeriodicReview,
		ReviewDate:             x.ReviewDate,
		AlertLeadDays:          x.AlertLeadDays,
		Status:                 string(x.Status),
		PreparedBy:             x.PreparedBy,
		ReviewedBy:             x.ReviewedBy,
		ApprovedBy:             x.ApprovedBy,
		CreatedAt:              x.CreatedAt,
		UpdatedAt:              x.UpdatedAt,
	}
}

func (d *documentDocument) toModel() *model.Document {
	return &model.Document{
		ID:                     d.ID,
		Code:                   d.Code,
		Title:                  d.Title,
		Type:                   types.DocumentType(d.Type),
		Category:               d.Category,
		Description:            d.Description,
		Version:                d.Version,
		FileURL:                d.FileURL,
		IssuedAt:               d.IssuedAt,
		ValidUntil:             d.ValidUntil,
		RequiresPeriodicReview: d.RequiresPeriodicReview,
		ReviewDate:             d.ReviewDate,
		AlertLeadDays:          d.AlertLeadDays,
		Status:                 types.DocumentStatus(d.Status),
		PreparedBy:             d.PreparedBy,
		ReviewedBy:             d.ReviewedBy,
		ApprovedBy:             d.ApprovedBy,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

type documentRepository struct {
	s *entityStore[documentDocument, *documentDocument, model.Document]
}

func newDocumentRepository(client *firestore.Client, prefix string) *documentRepository {
	return &documentRepository{s: &entityStore[documentDocument, *documentDocument, model.Document]{
		collection: newCollection[documentDocument](client, prefix, "documents", "document"),
		toDoc:      newDocumentDocument,
		toModel:    (*documentDocument).toModel,
		filters:    documentFilters,
	}}
}

func (r *documentRepository) Create(ctx context.Context, x *model.Document) (*model.Document, error) {
	return r.s.create(ctx, x)
}

func (r *documentRepository) Get(ctx context.Context, id int64) (*model.Document, error) {
	return r.s.find(ctx, id)
}

func (r *documentRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Document, error) {
	return r.s.list(ctx, opts...)
}

func (r *documentRepository) Update(ctx context.Context, x *model.Document) (*model.Document, error) {
	return r.s.update(ctx, x.ID, x)
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	return r.s.delete(ctx, id)
}
