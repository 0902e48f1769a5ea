package memory

import (
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps every record in process memory. It is used for tests and
// for running the server without Firestore.
type Memory struct {
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

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		risk:          newRiskRepository(),
		incident:      newIncidentRepository(),
		action:        newCorrectiveActionRepository(),
		training:      newTrainingRepository(),
		attendee:      newAttendeeRepository(),
		checklist:     newChecklistRepository(),
		inspection:    newInspectionRepository(),
		epp:           newEPPRepository(),
		eppAssignment: newEPPAssignmentRepository(),
		document:      newDocumentRepository(),
		user:          newUserRepository(),
		session:       newSessionRepository(),
	}
}

func (m *Memory) Risk() interfaces.RiskRepository                         { return m.risk }
func (m *Memory) Incident() interfaces.IncidentRepository                 { return m.incident }
func (m *Memory) CorrectiveAction() interfaces.CorrectiveActionRepository { return m.action }
func (m *Memory) Training() interfaces.TrainingRepository                 { return m.training }
func (m *Memory) Attendee() interfaces.AttendeeRepository                 { return m.attendee }
func (m *Memory) Checklist() interfaces.ChecklistRepository               { return m.checklist }
func (m *Memory) Inspection() interfaces.InspectionRepository             { return m.inspection }
func (m *Memory) EPP() interfaces.EPPRepository                           { return m.epp }
func (m *Memory) EPPAssignment() interfaces.EPPAssignmentRepository       { return m.eppAssignment }
func (m *Memory) Document() interfaces.DocumentRepository                 { return m.document }
func (m *Memory) User() interfaces.UserRepository                         { return m.user }
func (m *Memory) Session() interfaces.SessionRepository                   { return m.session }

// Close is a no-op
func (m *Memory) Close() error { return nil }
