package types

// FieldType is the value type of a field in a record schema
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDate     FieldType = "date"
	FieldTypeBool     FieldType = "bool"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeList     FieldType = "list"
	FieldTypeRef      FieldType = "ref"
)

// AllFieldTypes returns all valid field types
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeSelect,
		FieldTypeDate,
		FieldTypeBool,
		FieldTypeEmail,
		FieldTypePassword,
		FieldTypeList,
		FieldTypeRef,
	}
}

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText,
		FieldTypeNumber,
		FieldTypeSelect,
		FieldTypeDate,
		FieldTypeBool,
		FieldTypeEmail,
		FieldTypePassword,
		FieldTypeList,
		FieldTypeRef:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}
