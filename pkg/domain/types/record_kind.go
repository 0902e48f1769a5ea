package types

// RecordKind identifies a record schema for validation and export
type RecordKind string

const (
	RecordKindRisk             RecordKind = "risk"
	RecordKindIncident         RecordKind = "incident"
	RecordKindCorrectiveAction RecordKind = "corrective_action"
	RecordKindTraining         RecordKind = "training"
	RecordKindChecklist        RecordKind = "checklist"
	RecordKindInspection       RecordKind = "inspection"
	RecordKindEPP              RecordKind = "epp"
	RecordKindEPPAssignment    RecordKind = "epp_assignment"
	RecordKindDocument         RecordKind = "document"
	RecordKindRegistration     RecordKind = "registration"
)

// AllRecordKinds returns every kind with a validation schema
func AllRecordKinds() []RecordKind {
	return []RecordKind{
		RecordKindRisk,
		RecordKindIncident,
		RecordKindCorrectiveAction,
		RecordKindTraining,
		RecordKindChecklist,
		RecordKindInspection,
		RecordKindEPP,
		RecordKindEPPAssignment,
		RecordKindDocument,
		RecordKindRegistration,
	}
}

func (k RecordKind) IsValid() bool {
	for _, v := range AllRecordKinds() {
		if v == k {
			return true
		}
	}
	return false
}

func (k RecordKind) String() string {
	return string(k)
}
