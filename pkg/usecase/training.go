package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

type TrainingUseCase struct {
	*base
}

// TrainingStatistics summarizes trainings for the dashboard
type TrainingStatistics struct {
	Total      int
	ByType     map[string]int
	ByStatus   map[string]int
	TotalHours float64
	// AttendanceRate is attended over registered attendees of completed
	// trainings, 0 when nobody was registered
	AttendanceRate float64
}

// AttendanceInput is the recorded outcome for one attendee
type AttendanceInput struct {
	AttendeeID int64
	Attended   bool
	Score      *float64
}

func trainingPayload(t *model.Training, attendees []*model.Attendee) model.Payload {
	list := make([]map[string]string, 0, len(attendees))
	for _, a := range attendees {
		list = append(list, map[string]string{"name": a.Name, "email": a.Email})
	}
	return model.Payload{
		"training_id":    t.ID,
		"code":           t.Code,
		"title":          t.Title,
		"type":           string(t.Type),
		"scheduled_at":   t.ScheduledAt,
		"instructor":     t.Instructor,
		"location":       t.Location,
		"duration_hours": t.DurationHours,
		"modality":       string(t.Modality),
		"attendees":      list,
	}
}

// ScheduleTraining stores a training with its attendees. Attendees are
// reminded right away.
func (uc *TrainingUseCase) ScheduleTraining(ctx context.Context, input *model.Training, attendees []*model.Attendee, material *Attachment) (*Created[model.Training], error) {
	if err := uc.validate(types.RecordKindTraining, input.Fields()); err != nil {
		return nil, err
	}

	now := uc.now()
	training := *input
	training.ID = 0
	training.Code = model.NewCode(model.CodePrefixTraining, now)
	training.Status = types.TrainingStatusScheduled
	training.CreatedBy = model.ActorID(ctx)

	result := &Created[model.Training]{}
	if material != nil {
		url, err := uc.upload(ctx, types.BucketTrainings, "trainings/"+now.Format("200601"), *material)
		if err != nil {
			result.warn("upload of " + material.Filename + " failed")
		} else {
			training.MaterialURL = url
		}
	}

	created, err := uc.repo.Training().Create(ctx, &training)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create training")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindTraining)).Inc()

	var registered []*model.Attendee
	for _, a := range attendees {
		a := *a
		a.ID = 0
		a.TrainingID = created.ID
		a.Attended = false
		a.Score = nil
		saved, err := uc.repo.Attendee().Create(ctx, &a)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to register attendee",
				goerr.V(model.IDKey, created.ID), goerr.V(model.UserIDKey, a.UserID))
		}
		registered = append(registered, saved)
	}

	if len(registered) > 0 {
		uc.notify.fire(ctx, types.EventTrainingReminder, trainingPayload(created, registered))
	}

	result.Record = created
	return result, nil
}

func (uc *TrainingUseCase) GetTraining(ctx context.Context, id int64) (*model.Training, error) {
	t, err := uc.repo.Training().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get training", goerr.V(model.IDKey, id))
	}
	return t, nil
}

// ListTrainings lists trainings; modality is filtered here as the store
// has no index for it
func (uc *TrainingUseCase) ListTrainings(ctx context.Context, modality types.Modality, opts ...interfaces.ListOption) ([]*model.Training, error) {
	trainings, err := uc.repo.Training().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list trainings")
	}
	if modality == "" {
		return trainings, nil
	}

	out := trainings[:0]
	for _, t := range trainings {
		if t.Modality == modality {
			out = append(out, t)
		}
	}
	return out, nil
}

// ChangeTrainingStatus moves a training along its lifecycle. Rescheduling
// requires the new date.
func (uc *TrainingUseCase) ChangeTrainingStatus(ctx context.Context, id int64, status types.TrainingStatus, newDate *time.Time) (*model.Training, error) {
	training, err := uc.GetTraining(ctx, id)
	if err != nil {
		return nil, err
	}
	if !training.Status.CanTransitionTo(status) {
		return nil, transitionError(types.RecordKindTraining, id, training.Status, status)
	}

	if status == types.TrainingStatusRescheduled {
		if newDate == nil || newDate.IsZero() {
			return nil, goerr.Wrap(model.ErrMissingField, "new date is required to reschedule",
				goerr.V(model.FieldKey, "scheduled_at"), goerr.V(model.IDKey, id))
		}
		training.ScheduledAt = *newDate
	}
	training.Status = status

	updated, err := uc.repo.Training().Update(ctx, training)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update training status", goerr.V(model.IDKey, id))
	}
	return updated, nil
}

func (uc *TrainingUseCase) ListAttendees(ctx context.Context, trainingID int64) ([]*model.Attendee, error) {
	attendees, err := uc.repo.Attendee().List(ctx, interfaces.WithParentID(trainingID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list attendees", goerr.V(model.IDKey, trainingID))
	}
	return attendees, nil
}

// RecordAttendance stores who attended and their evaluation score
func (uc *TrainingUseCase) RecordAttendance(ctx context.Context, trainingID int64, records []AttendanceInput) ([]*model.Attendee, error) {
	if _, err := uc.GetTraining(ctx, trainingID); err != nil {
		return nil, err
	}

	var updated []*model.Attendee
	for _, r := range records {
		a, err := uc.repo.Attendee().Get(ctx, r.AttendeeID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get attendee", goerr.V(model.IDKey, r.AttendeeID))
		}
		if a.TrainingID != trainingID {
			return nil, goerr.Wrap(model.ErrInvalidInput, "attendee belongs to another training",
				goerr.V(model.IDKey, r.AttendeeID), goerr.V("training_id", trainingID))
		}
		if r.Score != nil && (*r.Score < 0 || *r.Score > 20) {
			return nil, goerr.Wrap(model.ErrInvalidInput, "score must be between 0 and 20",
				goerr.V(model.ValueKey, *r.Score))
		}

		a.Attended = r.Attended
		a.Score = r.Score
		saved, err := uc.repo.Attendee().Update(ctx, a)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to update attendee", goerr.V(model.IDKey, r.AttendeeID))
		}
		updated = append(updated, saved)
	}
	return updated, nil
}

// UploadMaterial replaces the course material of a training
func (uc *TrainingUseCase) UploadMaterial(ctx context.Context, id int64, material Attachment) (*model.Training, error) {
	training, err := uc.GetTraining(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.upload(ctx, types.BucketTrainings, "trainings/"+training.Code, material)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload training material", goerr.V(model.IDKey, id))
	}

	training.MaterialURL = url
	updated, err := uc.repo.Training().Update(ctx, training)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to link training material", goerr.V(model.IDKey, id))
	}
	return updated, nil
}

func (uc *TrainingUseCase) Statistics(ctx context.Context, opts ...interfaces.ListOption) (*TrainingStatistics, error) {
	trainings, err := uc.repo.Training().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list trainings")
	}

	s := &TrainingStatistics{
		Total:    len(trainings),
		ByType:   map[string]int{},
		ByStatus: map[string]int{},
	}
	var registered, attended int
	for _, t := range trainings {
		s.ByType[string(t.Type)]++
		s.ByStatus[string(t.Status)]++
		s.TotalHours += t.DurationHours

		if t.Status != types.TrainingStatusCompleted {
			continue
		}
		attendees, err := uc.ListAttendees(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range attendees {
			registered++
			if a.Attended {
				attended++
			}
		}
	}
	if registered > 0 {
		s.AttendanceRate = float64(attended) / float64(registered)
	}
	return s, nil
}
