package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func validRegistration() model.Fields {
	return model.Fields{
		"email":            "worker@example.com",
		"full_name":        "Ana Quispe",
		"password":         "abc123",
		"password_confirm": "abc123",
	}
}

func TestValidate_Registration(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		errs := model.ValidateRecord(types.RecordKindRegistration, validRegistration())
		gt.A(t, errs).Length(0)
		gt.NoError(t, errs.Err())
	})

	t.Run("password mismatch", func(t *testing.T) {
		f := validRegistration()
		f["password_confirm"] = "abc124"
		errs := model.ValidateRecord(types.RecordKindRegistration, f)
		gt.A(t, errs).Length(1)
		gt.True(t, errs.Has(model.ErrPasswordMismatch))
		gt.Error(t, errs.Err()).Is(model.ErrPasswordMismatch)
	})

	t.Run("too short", func(t *testing.T) {
		f := validRegistration()
		f["password"] = "abc12"
		f["password_confirm"] = "abc12"
		errs := model.ValidateRecord(types.RecordKindRegistration, f)
		gt.A(t, errs).Length(1)
		gt.True(t, errs.Has(model.ErrPasswordTooShort))
		gt.False(t, errs.Has(model.ErrPasswordMismatch))
	})

	t.Run("mismatch and too short together", func(t *testing.T) {
		f := validRegistration()
		f["password"] = "abc12"
		f["password_confirm"] = "abc124"
		errs := model.ValidateRecord(types.RecordKindRegistration, f)
		gt.A(t, errs).Length(2)
		gt.True(t, errs.Has(model.ErrPasswordMismatch))
		gt.True(t, errs.Has(model.ErrPasswordTooShort))
	})

	t.Run("malformed email", func(t *testing.T) {
		f := validRegistration()
		f["email"] = "not-an-email"
		errs := model.ValidateRecord(types.RecordKindRegistration, f)
		gt.A(t, errs.ForField("email")).Length(1)
		gt.True(t, errs.Has(model.ErrInvalidInput))
	})
}

func TestValidate_CollectsAllMissingFields(t *testing.T) {
	errs := model.ValidateRecord(types.RecordKindRisk, model.Fields{
		"description": "  ",
		"area":        "",
	})

	// description, area, risk_type, probability, severity
	gt.A(t, errs).Length(5)
	for _, e := range errs {
		gt.Error(t, e).Is(model.ErrMissingField)
	}
	gt.A(t, errs.ForField("description")).Length(1)
	gt.A(t, errs.ForField("process")).Length(0)
}

func TestValidate_EPPAssignmentStock(t *testing.T) {
	base := func(requested, available int) model.Fields {
		return model.Fields{
			"epp_id":             int64(1),
			"user_id":            "u1",
			"requested_quantity": requested,
			"assigned_at":        time.Now(),
			"available_stock":    available,
		}
	}

	errs := model.ValidateRecord(types.RecordKindEPPAssignment, base(5, 3))
	gt.A(t, errs).Length(1)
	gt.True(t, errs.Has(model.ErrInsufficientStock))

	gt.A(t, model.ValidateRecord(types.RecordKindEPPAssignment, base(3, 3))).Length(0)
	gt.A(t, model.ValidateRecord(types.RecordKindEPPAssignment, base(1, 3))).Length(0)

	errs = model.ValidateRecord(types.RecordKindEPPAssignment, base(0, 3))
	gt.True(t, errs.Has(model.ErrInvalidInput))
}

func TestValidate_EPPAssignmentMissingReference(t *testing.T) {
	a := &model.EPPAssignment{UserID: "u1", Quantity: 1, AssignedAt: time.Now()}
	errs := model.ValidateRecord(types.RecordKindEPPAssignment, a.Fields(10))
	gt.A(t, errs).Length(1)
	gt.Value(t, errs[0].Field).Equal("epp_id")
	gt.Error(t, errs[0]).Is(model.ErrMissingField)
}

func TestValidate_DocumentPeriodicReview(t *testing.T) {
	issued := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	doc := &model.Document{
		Title:                  "Política SST",
		Type:                   types.DocumentType("policy"),
		FileURL:                "https://storage.googleapis.com/docs/policy.pdf",
		IssuedAt:               issued,
		RequiresPeriodicReview: true,
	}

	errs := model.ValidateRecord(types.RecordKindDocument, doc.Fields())
	gt.A(t, errs).Length(2)
	gt.A(t, errs.ForField("review_date")).Length(1)
	gt.A(t, errs.ForField("alert_lead_days")).Length(1)

	doc.ApplyReviewDefaults()
	gt.A(t, model.ValidateRecord(types.RecordKindDocument, doc.Fields())).Length(0)

	doc.RequiresPeriodicReview = false
	doc.ReviewDate = nil
	doc.AlertLeadDays = 0
	gt.A(t, model.ValidateRecord(types.RecordKindDocument, doc.Fields())).Length(0)
}

func TestValidate_DocumentDateRange(t *testing.T) {
	issued := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	before := issued.AddDate(0, 0, -1)
	doc := &model.Document{
		Title:      "Reglamento interno",
		Type:       types.DocumentType("regulation"),
		FileURL:    "https://example.com/r.pdf",
		IssuedAt:   issued,
		ValidUntil: &before,
	}

	errs := model.ValidateRecord(types.RecordKindDocument, doc.Fields())
	gt.A(t, errs).Length(1)
	gt.True(t, errs.Has(model.ErrInvalidDateRange))
}

func TestValidate_RiskCrossField(t *testing.T) {
	risk := &model.Risk{
		Description: "Caída a distinto nivel",
		Area:        "Almacén",
		Type:        types.RiskType("locative"),
		Probability: 6,
		Severity:    3,
	}

	errs := model.ValidateRecord(types.RecordKindRisk, risk.Fields())
	gt.A(t, errs).Length(1)
	gt.A(t, errs.ForField("probability")).Length(1)
	gt.True(t, errs.Has(model.ErrInvalidInput))

	risk.Type = types.RiskType("cosmic")
	risk.Probability = 2
	errs = model.ValidateRecord(types.RecordKindRisk, risk.Fields())
	gt.A(t, errs.ForField("risk_type")).Length(1)
}

func TestValidate_IncidentAndEPPRanges(t *testing.T) {
	inc := &model.Incident{
		Type:            types.IncidentTypeMinorAccident,
		OccurredAt:      time.Now(),
		Area:            "Planta",
		Description:     "Corte en mano",
		MedicalRestDays: -1,
	}
	errs := model.ValidateRecord(types.RecordKindIncident, inc.Fields())
	gt.A(t, errs.ForField("medical_rest_days")).Length(1)

	epp := &model.EPP{Name: "Casco", Type: types.EPPTypeHead, LifespanMonths: 0}
	errs = model.ValidateRecord(types.RecordKindEPP, epp.Fields())
	gt.True(t, errs.Has(model.ErrInvalidInput))
	gt.A(t, errs.ForField("lifespan_months")).Length(1)
}

func TestValidate_UnknownKind(t *testing.T) {
	errs := model.ValidateRecord(types.RecordKind("payroll"), model.Fields{})
	gt.A(t, errs).Length(1)
	gt.True(t, errs.Has(model.ErrInvalidInput))
}

func TestValidationErrors_AsError(t *testing.T) {
	var empty model.ValidationErrors
	gt.NoError(t, empty.Err())

	errs := model.ValidateRecord(types.RecordKindChecklist, model.Fields{})
	err := errs.Err()
	gt.Error(t, err).Is(model.ErrMissingField)

	got, ok := model.AsValidationErrors(err)
	gt.True(t, ok)
	gt.A(t, got).Length(3)
}
