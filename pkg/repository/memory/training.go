package memory

import (
	"context"
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

type trainingRepository struct {
	t *table[model.Training]
}

func newTrainingRepository() *trainingRepository {
	return &trainingRepository{
		t: newTable("training", cloneTraining, func(x *model.Training) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *trainingRepository) Create(ctx context.Context, training *model.Training) (*model.Training, error) {
	return r.t.create(training), nil
}

func (r *trainingRepository) Get(ctx context.Context, id int64) (*model.Training, error) {
	return r.t.get(id)
}

func (r *trainingRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Training, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.Training) bool {
		return cfg.Match("", string(x.Status), string(x.Type)) && cfg.InWindow(x.ScheduledAt)
	}), nil
}

func (r *trainingRepository) Update(ctx context.Context, training *model.Training) (*model.Training, error) {
	return r.t.update(training)
}

type attendeeRepository struct {
	t *table[model.Attendee]
}

func newAttendeeRepository() *attendeeRepository {
	return &attendeeRepository{
		t: newTable("attendee", cloneAttendee, func(x *model.Attendee) (*int64, *time.Time, *time.Time) {
			return &x.ID, &x.CreatedAt, &x.UpdatedAt
		}),
	}
}

func (r *attendeeRepository) Create(ctx context.Context, attendee *model.Attendee) (*model.Attendee, error) {
	return r.t.create(attendee), nil
}

func (r *attendeeRepository) Get(ctx context.Context, id int64) (*model.Attendee, error) {
	return r.t.get(id)
}

func (r *attendeeRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Attendee, error) {
	cfg := interfaces.BuildListConfig(opts...)
	return r.t.list(func(x *model.Attendee) bool {
		return (cfg.ParentID() == 0 || cfg.ParentID() == x.TrainingID) &&
			(cfg.UserID() == "" || cfg.UserID() == x.UserID)
	}), nil
}

func (r *attendeeRepository) Update(ctx context.Context, attendee *model.Attendee) (*model.Attendee, error) {
	return r.t.update(attendee)
}
