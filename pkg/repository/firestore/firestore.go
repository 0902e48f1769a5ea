package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
)

type Firestore struct {
	client        *firestore.Client
	risk          *riskRepository
	incident      *incidentRepository
	action        *correctiveActionRepository
	training      *trainingRepository
	attendee      *attendeeRepository
	checklist     *checklistRepository
	inspection    *inspectionRepository
	epp           *eppRepository
	eppAssignment *eppAssignmentRepository
	document      *documentRepository
	user          *userRepository
	session       *sessionRepository
}

var _ interfaces.Repository = &Firestore{}

type config struct {
	collectionPrefix string
}

type Option func(*config)

// WithCollectionPrefix prefixes every collection name, e.g. for test isolation
func WithCollectionPrefix(prefix string) Option {
	return func(c *config) {
		c.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	p := cfg.collectionPrefix
	return &Firestore{
		client:        client,
		risk:          newRiskRepository(client, p),
		incident:      newIncidentRepository(client, p),
		action:        newCorrectiveActionRepository(client, p),
		training:      newTrainingRepository(client, p),
		attendee:      newAttendeeRepository(client, p),
		checklist:     newChecklistRepository(client, p),
		inspection:    newInspectionRepository(client, p),
		epp:           newEPPRepository(client, p),
		eppAssignment: newEPPAssignmentRepository(client, p),
		document:      newDocumentRepository(client, p),
		user:          newUserRepository(client, p),
		session:       newSessionRepository(client, p),
	}, nil
}

func (f *Firestore) Risk() interfaces.RiskRepository                         { return f.risk }
func (f *Firestore) Incident() interfaces.IncidentRepository                 { return f.incident }
func (f *Firestore) CorrectiveAction() interfaces.CorrectiveActionRepository { return f.action }
func (f *Firestore) Training() interfaces.TrainingRepository                 { return f.training }
func (f *Firestore) Attendee() interfaces.AttendeeRepository                 { return f.attendee }
func (f *Firestore) Checklist() interfaces.ChecklistRepository               { return f.checklist }
func (f *Firestore) Inspection() interfaces.InspectionRepository             { return f.inspection }
func (f *Firestore) EPP() interfaces.EPPRepository                           { return f.epp }
func (f *Firestore) EPPAssignment() interfaces.EPPAssignmentRepository       { return f.eppAssignment }
func (f *Firestore) Document() interfaces.DocumentRepository                 { return f.document }
func (f *Firestore) User() interfaces.UserRepository                         { return f.user }
func (f *Firestore) Session() interfaces.SessionRepository                   { return f.session }

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
