package model

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/secmon-lab/aegis/pkg/domain/model/config"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

type crossFieldRule func(fields Fields, errs *ValidationErrors)

// RecordValidator checks records against their schema and the cross-field
// rules of their kind. It never stops at the first problem.
type RecordValidator struct {
	schemas map[types.RecordKind]*config.RecordSchema
	rules   map[types.RecordKind][]crossFieldRule
	format  *validator.Validate
}

// NewRecordValidator creates a validator. Without schemas the defaults are used.
func NewRecordValidator(schemas ...*config.RecordSchema) *RecordValidator {
	if len(schemas) == 0 {
		schemas = DefaultSchemas()
	}

	v := &RecordValidator{
		schemas: make(map[types.RecordKind]*config.RecordSchema, len(schemas)),
		rules: map[types.RecordKind][]crossFieldRule{
			types.RecordKindRisk:          {levelRule("probability"), levelRule("severity")},
			types.RecordKindIncident:      {nonNegativeRule("medical_rest_days")},
			types.RecordKindEPP:           {minimumRule("lifespan_months", 1), nonNegativeRule("stock"), nonNegativeRule("min_stock")},
			types.RecordKindEPPAssignment: {minimumRule("requested_quantity", 1), stockRule},
			types.RecordKindDocument:      {periodicReviewRule, dateOrderRule("issued_at", "valid_until")},
			types.RecordKindRegistration:  {passwordRule},
		},
		format: validator.New(),
	}
	for _, s := range schemas {
		v.schemas[s.Kind] = s
	}
	return v
}

var defaultValidator = NewRecordValidator()

// ValidateRecord validates fields with the default schemas
func ValidateRecord(kind types.RecordKind, fields Fields) ValidationErrors {
	return defaultValidator.Validate(kind, fields)
}

// Validate returns every problem found in fields. The result is empty when
// the record is acceptable.
func (v *RecordValidator) Validate(kind types.RecordKind, fields Fields) ValidationErrors {
	var errs ValidationErrors

	schema, ok := v.schemas[kind]
	if !ok {
		errs.add("kind", ErrInvalidInput, fmt.Sprintf("unknown record kind %q", kind))
		return errs
	}

	for _, def := range schema.Fields {
		value, present := fields[def.ID]
		if !present || isEmpty(def.Type, value) {
			if def.Required {
				errs.add(def.ID, ErrMissingField, "")
			}
			continue
		}
		if detail := v.checkType(def, value); detail != "" {
			errs.add(def.ID, ErrInvalidInput, detail)
		}
	}

	for _, rule := range v.rules[kind] {
		rule(fields, &errs)
	}

	return errs
}

func (v *RecordValidator) checkType(def config.FieldDefinition, value any) string {
	switch def.Type {
	case types.FieldTypeText, types.FieldTypePassword:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expected string, got %T", value)
		}
	case types.FieldTypeEmail:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected string, got %T", value)
		}
		if err := v.format.Var(s, "email"); err != nil {
			return "malformed email address"
		}
	case types.FieldTypeNumber, types.FieldTypeRef:
		if _, ok := toFloat(value); !ok {
			return fmt.Sprintf("expected number, got %T", value)
		}
	case types.FieldTypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected bool, got %T", value)
		}
	case types.FieldTypeDate:
		if _, ok := toTime(value); !ok {
			return "expected date"
		}
	case types.FieldTypeSelect:
		s := fmt.Sprint(value)
		if len(def.Options) > 0 && !def.HasOption(s) {
			return fmt.Sprintf("%q is not an allowed value", s)
		}
	case types.FieldTypeList:
		if reflect.ValueOf(value).Kind() != reflect.Slice {
			return fmt.Sprintf("expected list, got %T", value)
		}
	}
	return ""
}

func isEmpty(t types.FieldType, value any) bool {
	switch x := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case time.Time:
		return x.IsZero()
	case *time.Time:
		return x == nil || x.IsZero()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer:
		return rv.IsNil()
	}

	// a zero reference points at nothing
	if t == types.FieldTypeRef {
		if f, ok := toFloat(value); ok && f == 0 {
			return true
		}
	}
	return false
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func toTime(value any) (time.Time, bool) {
	switch x := value.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, x); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func number(fields Fields, key string) (float64, bool) {
	value, ok := fields[key]
	if !ok || value == nil {
		return 0, false
	}
	return toFloat(value)
}

func levelRule(key string) crossFieldRule {
	return func(fields Fields, errs *ValidationErrors) {
		n, ok := number(fields, key)
		if !ok {
			return
		}
		if n < types.MinLevel || n > types.MaxLevel || n != float64(int(n)) {
			errs.add(key, ErrInvalidInput, fmt.Sprintf("must be an integer within %d..%d", types.MinLevel, types.MaxLevel))
		}
	}
}

func minimumRule(key string, min float64) crossFieldRule {
	return func(fields Fields, errs *ValidationErrors) {
		if n, ok := number(fields, key); ok && n < min {
			errs.add(key, ErrInvalidInput, fmt.Sprintf("must be at least %v", min))
		}
	}
}

func nonNegativeRule(key string) crossFieldRule {
	return minimumRule(key, 0)
}

func stockRule(fields Fields, errs *ValidationErrors) {
	requested, ok := number(fields, "requested_quantity")
	if !ok {
		return
	}
	available, ok := number(fields, "available_stock")
	if !ok {
		return
	}
	if requested > available {
		errs.add("requested_quantity", ErrInsufficientStock,
			fmt.Sprintf("requested %v, available %v", requested, available))
	}
}

func periodicReviewRule(fields Fields, errs *ValidationErrors) {
	if review, _ := fields["requires_periodic_review"].(bool); !review {
		return
	}
	for _, key := range []string{"review_date", "alert_lead_days"} {
		value, ok := fields[key]
		if !ok || isEmpty(types.FieldTypeNumber, value) {
			errs.add(key, ErrMissingField, "required when periodic review is enabled")
		}
	}
	if n, ok := number(fields, "alert_lead_days"); ok && n < 0 {
		errs.add("alert_lead_days", ErrInvalidInput, "must not be negative")
	}
}

func dateOrderRule(startKey, endKey string) crossFieldRule {
	return func(fields Fields, errs *ValidationErrors) {
		start, ok := toTime(fields[startKey])
		if !ok {
			return
		}
		end, ok := toTime(fields[endKey])
		if !ok {
			return
		}
		if end.Before(start) {
			errs.add(endKey, ErrInvalidDateRange, fmt.Sprintf("must not be before %s", startKey))
		}
	}
}

func passwordRule(fields Fields, errs *ValidationErrors) {
	password, _ := fields["password"].(string)
	confirm, _ := fields["password_confirm"].(string)
	if password == "" {
		return
	}
	if confirm != "" && password != confirm {
		errs.add("password_confirm", ErrPasswordMismatch, "")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs.add("password", ErrPasswordTooShort, fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
}
