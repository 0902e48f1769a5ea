package types

import "fmt"

// ActionType classifies a corrective action
type ActionType string

const (
	ActionTypeCorrective  ActionType = "corrective"
	ActionTypePreventive  ActionType = "preventive"
	ActionTypeImprovement ActionType = "improvement"
)

func AllActionTypes() []ActionType {
	return []ActionType{ActionTypeCorrective, ActionTypePreventive, ActionTypeImprovement}
}

func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeCorrective, ActionTypePreventive, ActionTypeImprovement:
		return true
	}
	return false
}

func (t ActionType) String() string { return string(t) }

// TrainingType is the subject area of a training session
type TrainingType string

const (
	TrainingTypeInduction         TrainingType = "induction"
	TrainingTypeJobSpecific       TrainingType = "job_specific"
	TrainingTypeEPPUsage          TrainingType = "epp_usage"
	TrainingTypeRiskPrevention    TrainingType = "risk_prevention"
	TrainingTypeFirstAid          TrainingType = "first_aid"
	TrainingTypeEvacuation        TrainingType = "evacuation"
	TrainingTypeErgonomics        TrainingType = "ergonomics"
	TrainingTypeHazardousHandling TrainingType = "hazardous_substances"
	TrainingTypeOther             TrainingType = "other"
)

// AllTrainingTypes returns all valid training types
func AllTrainingTypes() []TrainingType {
	return []TrainingType{
		TrainingTypeInduction,
		TrainingTypeJobSpecific,
		TrainingTypeEPPUsage,
		TrainingTypeRiskPrevention,
		TrainingTypeFirstAid,
		TrainingTypeEvacuation,
		TrainingTypeErgonomics,
		TrainingTypeHazardousHandling,
		TrainingTypeOther,
	}
}

func (t TrainingType) IsValid() bool {
	for _, v := range AllTrainingTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func (t TrainingType) String() string { return string(t) }

// Modality is how a training is delivered
type Modality string

const (
	ModalityInPerson Modality = "in_person"
	ModalityVirtual  Modality = "virtual"
	ModalityMixed    Modality = "mixed"
)

func AllModalities() []Modality {
	return []Modality{ModalityInPerson, ModalityVirtual, ModalityMixed}
}

func (m Modality) IsValid() bool {
	switch m {
	case ModalityInPerson, ModalityVirtual, ModalityMixed:
		return true
	}
	return false
}

// EPPType is the body zone a piece of protective equipment covers
type EPPType string

const (
	EPPTypeHead        EPPType = "head"
	EPPTypeEyesFace    EPPType = "eyes_face"
	EPPTypeHearing     EPPType = "hearing"
	EPPTypeRespiratory EPPType = "respiratory"
	EPPTypeHands       EPPType = "hands"
	EPPTypeFeet        EPPType = "feet"
	EPPTypeBody        EPPType = "body"
	EPPTypeFall        EPPType = "fall_protection"
	EPPTypeOther       EPPType = "other"
)

// AllEPPTypes returns all valid EPP types
func AllEPPTypes() []EPPType {
	return []EPPType{
		EPPTypeHead,
		EPPTypeEyesFace,
		EPPTypeHearing,
		EPPTypeRespiratory,
		EPPTypeHands,
		EPPTypeFeet,
		EPPTypeBody,
		EPPTypeFall,
		EPPTypeOther,
	}
}

func (t EPPType) IsValid() bool {
	for _, v := range AllEPPTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func (t EPPType) String() string { return string(t) }

// DocumentType is the kind of controlled document
type DocumentType string

const (
	DocumentTypePolicy      DocumentType = "policy"
	DocumentTypeProcedure   DocumentType = "procedure"
	DocumentTypeRegulation  DocumentType = "regulation"
	DocumentTypePlan        DocumentType = "plan"
	DocumentTypeProgram     DocumentType = "program"
	DocumentTypeRecord      DocumentType = "record"
	DocumentTypeInstruction DocumentType = "instruction"
	DocumentTypeOther       DocumentType = "other"
)

// AllDocumentTypes returns all valid document types
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypePolicy,
		DocumentTypeProcedure,
		DocumentTypeRegulation,
		DocumentTypePlan,
		DocumentTypeProgram,
		DocumentTypeRecord,
		DocumentTypeInstruction,
		DocumentTypeOther,
	}
}

func (t DocumentType) IsValid() bool {
	for _, v := range AllDocumentTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func (t DocumentType) String() string { return string(t) }

// ParseCatalogValue checks s against a catalog and returns it typed
func ParseCatalogValue[T ~string](s string, valid func(T) bool) (T, error) {
	v := T(s)
	if !valid(v) {
		return "", fmt.Errorf("invalid value: %s", s)
	}
	return v, nil
}
