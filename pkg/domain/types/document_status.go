package types

import "fmt"

// DocumentStatus is the control state of a document
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusCurrent  DocumentStatus = "current"
	DocumentStatusObsolete DocumentStatus = "obsolete"
	DocumentStatusArchived DocumentStatus = "archived"
)

var documentStatusTransitions = transitions[DocumentStatus]{
	DocumentStatusDraft:    {DocumentStatusCurrent, DocumentStatusArchived},
	DocumentStatusCurrent:  {DocumentStatusObsolete, DocumentStatusArchived},
	DocumentStatusObsolete: {DocumentStatusArchived},
}

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft,
		DocumentStatusCurrent,
		DocumentStatusObsolete,
		DocumentStatusArchived:
		return true
	default:
		return false
	}
}

func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	return documentStatusTransitions.allows(s, next)
}

func (s DocumentStatus) String() string {
	return string(s)
}

func ParseDocumentStatus(s string) (DocumentStatus, error) {
	status := DocumentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid document status: %s", s)
	}
	return status, nil
}
