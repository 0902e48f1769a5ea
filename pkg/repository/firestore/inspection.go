package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

type checklistItemDocument struct {
	Question     string `firestore:"question"`
	ResponseType string `firestore:"response_type"`
	Critical     bool   `firestore:"critical"`
}

type checklistDocument struct {
	ID          int64                   `firestore:"id"`
	Name        string                  `firestore:"name"`
	Description string                  `firestore:"description"`
	Type        string                  `firestore:"type"`
	Items       []checklistItemDocument `firestore:"items"`
	Active      bool                    `firestore:"active"`
	CreatedBy   string                  `firestore:"created_by"`
	CreatedAt   time.Time               `firestore:"created_at"`
	UpdatedAt   time.Time               `firestore:"updated_at"`
}

func (d checklistDocument) docID() int64        { return d.ID }
func (d *checklistDocument) created() time.Time { return d.CreatedAt }
func (d *checklistDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newChecklistDocument(x *model.Checklist) *checklistDocument {
	items := make([]checklistItemDocument, len(x.Items))
	for i, item := range x.Items {
		items[i] = checklistItemDocument(item)
	}
	return &checklistDocument{
		ID:          x.ID,
		Name:        x.Name,
		Description: x.Description,
		Type:        x.Type,
		Items:       items,
		Active:      x.Active,
		CreatedBy:   x.CreatedBy,
		CreatedAt:   x.CreatedAt,
		UpdatedAt:   x.UpdatedAt,
	}
}

func (d *checklistDocument) toModel() *model.Checklist {
	items := make([]model.ChecklistItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = model.ChecklistItem(item)
	}
	return &model.Checklist{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Type:        d.Type,
		Items:       items,
		Active:      d.Active,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type checklistRepository struct {
	s *entityStore[checklistDocument, *checklistDocument, model.Checklist]
}

func newChecklistRepository(client *firestore.Client, prefix string) *checklistRepository {
	return &checklistRepository{s: &entityStore[checklistDocument, *checklistDocument, model.Checklist]{
		collection: newCollection[checklistDocument](client, prefix, "checklists", "checklist"),
		toDoc:      newChecklistDocument,
		toModel:    (*checklistDocument).toModel,
		filters:    filterFields{typ: "type"},
	}}
}

func (r *checklistRepository) Create(ctx context.Context, x *model.Checklist) (*model.Checklist, error) {
	return r.s.create(ctx, x)
}

func (r *checklistRepository) Get(ctx context.Context, id int64) (*model.Checklist, error) {
	return r.s.find(ctx, id)
}

func (r *checklistRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Checklist, error) {
	return r.s.list(ctx, opts...)
}

func (r *checklistRepository) Update(ctx context.Context, x *model.Checklist) (*model.Checklist, error) {
	return r.s.update(ctx, x.ID, x)
}

type inspectionAnswerDocument struct {
	ItemIndex int    `firestore:"item_index"`
	Compliant bool   `firestore:"compliant"`
	Comment   string `firestore:"comment"`
}

type inspectionDocument struct {
	ID              int64                      `firestore:"id"`
	Code            string                     `firestore:"code"`
	ChecklistID     int64                      `firestore:"checklist_id"`
	Area            string                     `firestore:"area"`
	ScheduledDate   time.Time                  `firestore:"scheduled_date"`
	InspectorUserID string                     `firestore:"inspector_user_id"`
	Status          string                     `firestore:"status"`
	Observations    string                     `firestore:"observations"`
	Answers         []inspectionAnswerDocument `firestore:"answers"`
	CreatedBy       string                     `firestore:"created_by"`
	CreatedAt       time.Time                  `firestore:"created_at"`
	UpdatedAt       time.Time                  `firestore:"updated_at"`
}

func (d inspectionDocument) docID() int64        { return d.ID }
func (d *inspectionDocument) created() time.Time { return d.CreatedAt }
func (d *inspectionDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newInspectionDocument(x *model.Inspection) *inspectionDocument {
	answers := make([]inspectionAnswerDocument, len(x.Answers))
	for i, a := range x.Answers {
		answers[i] = inspectionAnswerDocument(a)
	}
	return &inspectionDocument{
		ID:              x.ID,
		Code:            x.Code,
		ChecklistID:     x.ChecklistID,
		Area:            x.Area,
		ScheduledDate:   x.ScheduledDate,
		InspectorUserID: x.InspectorUserID,
		Status:          string(x.Status),
		Observations:    x.Observations,
		Answers:         answers,
		CreatedBy:       x.CreatedBy,
		CreatedAt:       x.CreatedAt,
		UpdatedAt:       x.UpdatedAt,
	}
}

func (d *inspectionDocument) toModel() *model.Inspection {
	answers := make([]model.InspectionAnswer, len(d.Answers))
	for i, a := range d.Answers {
		answers[i] = model.InspectionAnswer(a)
	}
	return &model.Inspection{
		ID:              d.ID,
		Code:            d.Code,
		ChecklistID:     d.ChecklistID,
		Area:            d.Area,
		ScheduledDate:   d.ScheduledDate,
		InspectorUserID: d.InspectorUserID,
		Status:          types.InspectionStatus(d.Status),
		Observations:    d.Observations,
		Answers:         answers,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type inspectionRepository struct {
	s *entityStore[inspectionDocument, *inspectionDocument, model.Inspection]
}

func newInspectionRepository(client *firestore.Client, prefix string) *inspectionRepository {
	return &inspectionRepository{s: &entityStore[inspectionDocument, *inspectionDocument, model.Inspection]{
		collection: newCollection[inspectionDocument](client, prefix, "inspections", "inspection"),
		toDoc:      newInspectionDocument,
		toModel:    (*inspectionDocument).toModel,
		filters:    inspectionFilters,
	}}
}

func (r *inspectionRepository) Create(ctx context.Context, x *model.Inspection) (*model.Inspection, error) {
	return r.s.create(ctx, x)
}

func (r *inspectionRepository) Get(ctx context.Context, id int64) (*model.Inspection, error) {
	return r.s.find(ctx, id)
}

func (r *inspectionRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Inspection, error) {
	return r.s.list(ctx, opts...)
}

func (r *inspectionRepository) Update(ctx context.Context, x *model.Inspection) (*model.Inspection, error) {
	return r.s.update(ctx, x.ID, x)
}
