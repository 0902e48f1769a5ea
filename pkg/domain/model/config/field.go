package config

import "github.com/secmon-lab/aegis/pkg/domain/types"

// FieldOption is an allowed value of a select field
type FieldOption struct {
	ID   string
	Name string
}

// FieldDefinition defines one field of a record schema
type FieldDefinition struct {
	ID       string
	Name     string
	Type     types.FieldType
	Required bool
	Options  []FieldOption // select only
}

// HasOption reports whether id is one of the declared options
func (f FieldDefinition) HasOption(id string) bool {
	for _, opt := range f.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// RecordSchema holds the field definitions of one record kind
type RecordSchema struct {
	Kind   types.RecordKind
	Fields []FieldDefinition
}

// Field looks up a definition by ID
func (s *RecordSchema) Field(id string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Options builds select options from an enum's values
func Options[T ~string](values []T) []FieldOption {
	opts := make([]FieldOption, len(values))
	for i, v := range values {
		opts[i] = FieldOption{ID: string(v), Name: string(v)}
	}
	return opts
}
