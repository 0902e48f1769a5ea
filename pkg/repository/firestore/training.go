package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

type trainingDocument struct {
	ID            int64     `firestore:"id"`
	Code          string    `firestore:"code"`
	Title         string    `firestore:"title"`
	Description   string    `firestore:"description"`
	Type          string    `firestore:"type"`
	Modality      string    `firestore:"modality"`
	Instructor    string    `firestore:"instructor"`
	ScheduledAt   time.Time `firestore:"scheduled_at"`
	DurationHours float64   `firestore:"duration_hours"`
	Location      string    `firestore:"location"`
	Status        string    `firestore:"status"`
	MaterialURL   string    `firestore:"material_url"`
	CreatedBy     string    `firestore:"created_by"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func (d trainingDocument) docID() int64        { return d.ID }
func (d *trainingDocument) created() time.Time { return d.CreatedAt }
func (d *trainingDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newTrainingDocument(x *model.Training) *trainingDocument {
	return &trainingDocument{
		ID:            x.ID,
		Code:          x.Code,
		Title:         x.Title,
		Description:   x.Description,
		Type:          string(x.Type),
		Modality:      string(x.Modality),
		Instructor:    x.Instructor,
		ScheduledAt:   x.ScheduledAt,
		DurationHours: x.DurationHours,
		Location:      x.Location,
		Status:        string(x.Status),
		MaterialURL:   x.MaterialURL,
		CreatedBy:     x.CreatedBy,
		CreatedAt:     x.CreatedAt,
		UpdatedAt:     x.UpdatedAt,
	}
}

func (d *trainingDocument) toModel() *model.Training {
	return &model.Training{
		ID:            d.ID,
		Code:          d.Code,
		Title:         d.Title,
		Description:   d.Description,
		Type:          types.TrainingType(d.Type),
		Modality:      types.Modality(d.Modality),
		Instructor:    d.Instructor,
		ScheduledAt:   d.ScheduledAt,
		DurationHours: d.DurationHours,
		Location:      d.Location,
		Status:        types.TrainingStatus(d.Status),
		MaterialURL:   d.MaterialURL,
		CreatedBy:     d.CreatedBy,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type trainingRepository struct {
	s *entityStore[trainingDocument, *trainingDocument, model.Training]
}

func newTrainingRepository(client *firestore.Client, prefix string) *trainingRepository {
	return &trainingRepository{s: &entityStore[trainingDocument, *trainingDocument, model.Training]{
		collection: newCollection[trainingDocument](client, prefix, "trainings", "training"),
		toDoc:      newTrainingDocument,
		toModel:    (*trainingDocument).toModel,
		filters:    trainingFilters,
	}}
}

func (r *trainingRepository) Create(ctx context.Context, x *model.Training) (*model.Training, error) {
	return r.s.create(ctx, x)
}

func (r *trainingRepository) Get(ctx context.Context, id int64) (*model.Training, error) {
	return r.s.find(ctx, id)
}

func (r *trainingRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Training, error) {
	return r.s.list(ctx, opts...)
}

func (r *trainingRepository) Update(ctx context.Context, x *model.Training) (*model.Training, error) {
	return r.s.update(ctx, x.ID, x)
}

type attendeeDocument struct {
	ID         int64     `firestore:"id"`
	TrainingID int64     `firestore:"training_id"`
	UserID     string    `firestore:"user_id"`
	Name       string    `firestore:"name"`
	Email      string    `firestore:"email"`
	Attended   bool      `firestore:"attended"`
	Score      *float64  `firestore:"score"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

func (d attendeeDocument) docID() int64        { return d.ID }
func (d *attendeeDocument) created() time.Time { return d.CreatedAt }
func (d *attendeeDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newAttendeeDocument(x *model.Attendee) *attendeeDocument {
	return &attendeeDocument{
		ID:         x.ID,
		TrainingID: x.TrainingID,
		UserID:     x.UserID,
		Name:       x.Name,
		Email:      x.Email,
		Attended:   x.Attended,
		Score:      x.Score,
		CreatedAt:  x.CreatedAt,
		UpdatedAt:  x.UpdatedAt,
	}
}

func (d *attendeeDocument) toModel() *model.Attendee {
	return &model.Attendee{
		ID:         d.ID,
		TrainingID: d.TrainingID,
		UserID:     d.UserID,
		Name:       d.Name,
		Email:      d.Email,
		Attended:   d.Attended,
		Score:      d.Score,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type attendeeRepository struct {
	s *entityStore[attendeeDocument, *attendeeDocument, model.Attendee]
}

func newAttendeeRepository(client *firestore.Client, prefix string) *attendeeRepository {
	return &attendeeRepository{s: &entityStore[attendeeDocument, *attendeeDocument, model.Attendee]{
		collection: newCollection[attendeeDocument](client, prefix, "attendees", "attendee"),
		toDoc:      newAttendeeDocument,
		toModel:    (*attendeeDocument).toModel,
		filters:    filterFields{parent: "training_id", user: "user_id"},
	}}
}

func (r *attendeeRepository) Create(ctx context.Context, x *model.Attendee) (*model.Attendee, error) {
	return r.s.create(ctx, x)
}

func (r *attendeeRepository) Get(ctx context.Context, id int64) (*model.Attendee, error) {
	return r.s.find(ctx, id)
}

func (r *attendeeRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Attendee, error) {
	return r.s.list(ctx, opts...)
}

func (r *attendeeRepository) Update(ctx context.Context, x *model.Attendee) (*model.Attendee, error) {
	return r.s.update(ctx, x.ID, x)
}
