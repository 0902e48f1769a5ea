package model

import (
	"github.com/secmon-lab/aegis/pkg/domain/model/config"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// Fields is the loosely typed view of a record handed to the validator.
// Keys are snake_case field IDs.
type Fields map[string]any

func required(id string, t types.FieldType) config.FieldDefinition {
	return config.FieldDefinition{ID: id, Name: id, Type: t, Required: true}
}

func optional(id string, t types.FieldType) config.FieldDefinition {
	return config.FieldDefinition{ID: id, Name: id, Type: t}
}

func selectOf[T ~string](id string, isRequired bool, values []T) config.FieldDefinition {
	return config.FieldDefinition{
		ID:       id,
		Name:     id,
		Type:     types.FieldTypeSelect,
		Required: isRequired,
		Options:  config.Options(values),
	}
}

// DefaultSchemas returns the schema of every record kind
func DefaultSchemas() []*config.RecordSchema {
	return []*config.RecordSchema{
		{
			Kind: types.RecordKindRisk,
			Fields: []config.FieldDefinition{
				required("description", types.FieldTypeText),
				required("area", types.FieldTypeText),
				selectOf("risk_type", true, types.AllRiskTypes()),
				required("probability", types.FieldTypeNumber),
				required("severity", types.FieldTypeNumber),
				optional("process", types.FieldTypeText),
				optional("control_measures", types.FieldTypeText),
				optional("review_date", types.FieldTypeDate),
			},
		},
		{
			Kind: types.RecordKindIncident,
			Fields: []config.FieldDefinition{
				selectOf("type", true, types.AllIncidentTypes()),
				required("occurred_at", types.FieldTypeDate),
				required("area", types.FieldTypeText),
				required("description", types.FieldTypeText),
				optional("location", types.FieldTypeText),
				optional("medical_rest_days", types.FieldTypeNumber),
				optional("reported_to_authority_at", types.FieldTypeDate),
			},
		},
		{
			Kind: types.RecordKindCorrectiveAction,
			Fields: []config.FieldDefinition{
				required("incident_id", types.FieldTypeRef),
				required("description", types.FieldTypeText),
				selectOf("type", true, types.AllActionTypes()),
				required("owner_user_id", types.FieldTypeText),
				required("due_date", types.FieldTypeDate),
			},
		},
		{
			Kind: types.RecordKindTraining,
			Fields: []config.FieldDefinition{
				required("title", types.FieldTypeText),
				selectOf("type", true, types.AllTrainingTypes()),
				required("instructor", types.FieldTypeText),
				required("scheduled_at", types.FieldTypeDate),
				selectOf("modality", false, types.AllModalities()),
				optional("duration_hours", types.FieldTypeNumber),
			},
		},
		{
			Kind: types.RecordKindChecklist,
			Fields: []config.FieldDefinition{
				required("name", types.FieldTypeText),
				required("type", types.FieldTypeText),
				required("items", types.FieldTypeList),
			},
		},
		{
			Kind: types.RecordKindInspection,
			Fields: []config.FieldDefinition{
				required("checklist_id", types.FieldTypeRef),
				required("area", types.FieldTypeText),
				required("scheduled_date", types.FieldTypeDate),
				required("inspector_user_id", types.FieldTypeText),
			},
		},
		{
			Kind: types.RecordKindEPP,
			Fields: []config.FieldDefinition{
				required("name", types.FieldTypeText),
				selectOf("type", true, types.AllEPPTypes()),
				required("lifespan_months", types.FieldTypeNumber),
				optional("min_stock", types.FieldTypeNumber),
				optional("stock", types.FieldTypeNumber),
				optional("unit_cost", types.FieldTypeNumber),
			},
		},
		{
			Kind: types.RecordKindEPPAssignment,
			Fields: []config.FieldDefinition{
				required("epp_id", types.FieldTypeRef),
				required("user_id", types.FieldTypeText),
				required("requested_quantity", types.FieldTypeNumber),
				required("assigned_at", types.FieldTypeDate),
				optional("available_stock", types.FieldTypeNumber),
			},
		},
		{
			Kind: types.RecordKindDocument,
			Fields: []config.FieldDefinition{
				required("title", types.FieldTypeText),
				selectOf("type", true, types.AllDocumentTypes()),
				required("file_url", types.FieldTypeText),
				required("issued_at", types.FieldTypeDate),
				optional("valid_until", types.FieldTypeDate),
				optional("requires_periodic_review", types.FieldTypeBool),
				optional("review_date", types.FieldTypeDate),
				optional("alert_lead_days", types.FieldTypeNumber),
			},
		},
		{
			Kind: types.RecordKindRegistration,
			Fields: []config.FieldDefinition{
				required("email", types.FieldTypeEmail),
				required("full_name", types.FieldTypeText),
				required("password", types.FieldTypePassword),
				required("password_confirm", types.FieldTypePassword),
			},
		},
	}
}
