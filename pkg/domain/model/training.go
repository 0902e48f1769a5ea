package model

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// Training is a scheduled safety training session
type Training struct {
	ID            int64
	Code          string
	Title         string
	Description   string
	Type          types.TrainingType
	Modality      types.Modality
	Instructor    string
	ScheduledAt   time.Time
	DurationHours float64
	Location      string
	Status        types.TrainingStatus
	MaterialURL   string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (x *Training) Fields() Fields {
	f := Fields{
		"title":          x.Title,
		"type":           x.Type,
		"instructor":     x.Instructor,
		"scheduled_at":   x.ScheduledAt,
		"duration_hours": x.DurationHours,
	}
	if x.Modality != "" {
		f["modality"] = x.Modality
	}
	return f
}

// StartsWithin reports whether an upcoming training starts between now and now+window
func (x *Training) StartsWithin(now time.Time, window time.Duration) bool {
	if !x.Status.IsUpcoming() {
		return false
	}
	return !x.ScheduledAt.Before(now) && !x.ScheduledAt.After(now.Add(window))
}

// Attendee is a participant of a training
type Attendee struct {
	ID         int64
	TrainingID int64
	UserID     string
	Name       string
	Email      string
	Attended   bool
	Score      *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
