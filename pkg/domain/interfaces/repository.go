package interfaces

import (
	"context"

	"github.com/secmon-lab/aegis/pkg/domain/model"
)

// Repository defines the interface for data persistence
type Repository interface {
	Risk() RiskRepository
	Incident() IncidentRepository
	CorrectiveAction() CorrectiveActionRepository
	Training() TrainingRepository
	Attendee() AttendeeRepository
	Checklist() ChecklistRepository
	Inspection() InspectionRepository
	EPP() EPPRepository
	EPPAssignment() EPPAssignmentRepository
	Document() DocumentRepository
	User() UserRepository
	Session() SessionRepository

	Close() error
}

type RiskRepository interface {
	// Create creates a new risk with auto-generated ID
	Create(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Get retrieves a risk by ID
	Get(ctx context.Context, id int64) (*model.Risk, error)

	// List retrieves risks matching the options
	List(ctx context.Context, opts ...ListOption) ([]*model.Risk, error)

	// Update replaces an existing risk
	Update(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Delete deletes a risk by ID
	Delete(ctx context.Context, id int64) error
}

type IncidentRepository interface {
	Create(ctx context.Context, incident *model.Incident) (*model.Incident, error)
	Get(ctx context.Context, id int64) (*model.Incident, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.Incident, error)
	Update(ctx context.Context, incident *model.Incident) (*model.Incident, error)
}

// CorrectiveActionRepository stores actions; WithParentID filters by incident
type CorrectiveActionRepository interface {
	Create(ctx context.Context, action *model.CorrectiveAction) (*model.CorrectiveAction, error)
	Get(ctx context.Context, id int64) (*model.CorrectiveAction, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.CorrectiveAction, error)
	Update(ctx context.Context, action *model.CorrectiveAction) (*model.CorrectiveAction, error)
}

type TrainingRepository interface {
	Create(ctx context.Context, training *model.Training) (*model.Training, error)
	Get(ctx context.Context, id int64) (*model.Training, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.Training, error)
	Update(ctx context.Context, training *model.Training) (*model.Training, error)
}

// AttendeeRepository stores attendees; WithParentID filters by training
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *model.Attendee) (*model.Attendee, error)
	Get(ctx context.Context, id int64) (*model.Attendee, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.Attendee, error)
	Update(ctx context.Context, attendee *model.Attendee) (*model.Attendee, error)
}

type ChecklistRepository interface {
	Create(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error)
	Get(ctx context.Context, id int64) (*model.Checklist, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.Checklist, error)
	Update(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error)
}

type InspectionRepository interface {
	Create(ctx context.Context, inspection *model.Inspection) (*model.Inspection, error)
	Get(ctx context.Context, id int64) (*model.Inspection, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.Inspection, error)
	Update(ctx context.Context, inspection *model.Inspection) (*model.Inspection, error)
}

type EPPRepository interface {
	Create(ctx context.Context, epp *model.EPP) (*model.EPP, error)
	Get(ctx context.Context, id int64) (*model.EPP, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.EPP, error)
	Update(ctx context.Context, epp *model.EPP) (*model.EPP, error)

	// AdjustStock adds delta to the stock of an item atomically and returns
	// the updated item. It fails with model.ErrInsufficientStock when the
	// result would be negative.
	AdjustStock(ctx context.Context, id int64, delta int) (*model.EPP, error)
}

// EPPAssignmentRepository stores assignments; WithParentID filters by EPP item
// and WithUserID by worker
type EPPAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.EPPAssignment) (*model.EPPAssignment, error)
	Get(ctx context.Context, id int64) (*model.EPPAssignment, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.EPPAssignment, error)
	Update(ctx context.Context, assignment *model.EPPAssignment) (*model.EPPAssignment, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)
	Get(ctx context.Context, id int64) (*model.Document, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.Document, error)
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository stores accounts. Users are keyed by a UUID string and
// looked up by email at login.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts ...ListOption) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
}

type SessionRepository interface {
	Put(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
