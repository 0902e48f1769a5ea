package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

func newIncident(typ types.IncidentType, occurred time.Time, restDays int) *model.Incident {
	return &model.Incident{
		Type:            typ,
		OccurredAt:      occurred,
		Area:            "Plant",
		Location:        "Line 2",
		Description:     "Worker slipped on wet floor",
		Affected:        model.AffectedPerson{Name: "Ana Quispe", NationalID: "12345678"},
		MedicalRestDays: restDays,
	}
}

func TestIncidentUseCase_RegisterIncident(t *testing.T) {
	t.Run("registers and notifies", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := asUser("reporter", types.RoleUser)

		res, err := env.uc.Incident.RegisterIncident(ctx,
			newIncident(types.IncidentTypeDisablingAccident, testNow.Add(-2*time.Hour), 3), pdf("report.pdf"))
		gt.NoError(t, err).Required()

		gt.Value(t, res.Record.Status).Equal(types.IncidentStatusReported)
		gt.Value(t, res.Record.ReportedBy).Equal("reporter")
		gt.Value(t, res.Record.Code).Equal("INC-20240615100000")
		gt.A(t, res.Record.EvidenceURLs).Length(1)

		events := env.notifier.Events(types.EventIncidentRegistered)
		gt.A(t, events).Length(1).Required()
		gt.Value(t, events[0].Payload["code"]).Equal(res.Record.Code)
		gt.Value(t, events[0].Payload["type"]).Equal("disabling_accident")
	})

	t.Run("authority timestamp marks the incident as reported", func(t *testing.T) {
		env := newTestEnv(t)
		at := testNow.Add(-time.Hour)
		in := newIncident(types.IncidentTypeIncident, testNow.Add(-3*time.Hour), 0)
		in.ReportedToAuthorityAt = &at

		res, err := env.uc.Incident.RegisterIncident(asUser("u", types.RoleUser), in)
		gt.NoError(t, err).Required()
		gt.True(t, res.Record.ReportedToAuthority)
	})

	t.Run("negative rest days are rejected", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.Incident.RegisterIncident(asUser("u", types.RoleUser),
			newIncident(types.IncidentTypeMinorAccident, testNow, -1))
		gt.Error(t, err).Is(model.ErrInvalidInput)
		gt.A(t, env.notifier.Events(types.EventIncidentRegistered)).Length(0)
	})

	t.Run("notification failure is not an error", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.err = model.ErrRemoteUnavailable
		_, err := env.uc.Incident.RegisterIncident(asUser("u", types.RoleUser),
			newIncident(types.IncidentTypeIncident, testNow, 0))
		gt.NoError(t, err)
	})
}

func TestIncidentUseCase_Investigation(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser("sup", types.RoleSupervisor)

	res, err := env.uc.Incident.RegisterIncident(ctx, newIncident(types.IncidentTypeMinorAccident, testNow, 1))
	gt.NoError(t, err).Required()
	id := res.Record.ID

	_, err = env.uc.Incident.ChangeIncidentStatus(ctx, id, types.IncidentStatusInvestigated, nil)
	gt.Error(t, err).Is(model.ErrInvalidTransition)

	inc, err := env.uc.Incident.ChangeIncidentStatus(ctx, id, types.IncidentStatusUnderInvestigation, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, inc.Status).Equal(types.IncidentStatusUnderInvestigation)

	inc, err = env.uc.Incident.ChangeIncidentStatus(ctx, id, types.IncidentStatusInvestigated, &usecase.InvestigationInput{
		ImmediateCauses: "Wet floor",
		BasicCauses:     "No cleaning schedule",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, inc.ImmediateCauses).Equal("Wet floor")
	gt.Value(t, inc.BasicCauses).Equal("No cleaning schedule")
}

func TestIncidentUseCase_CorrectiveActions(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser("sup", types.RoleSupervisor)

	res, err := env.uc.Incident.RegisterIncident(ctx, newIncident(types.IncidentTypeIncident, testNow, 0))
	gt.NoError(t, err).Required()

	t.Run("unknown incident", func(t *testing.T) {
		_, err := env.uc.Incident.AddCorrectiveAction(ctx, &model.CorrectiveAction{
			IncidentID:  999,
			Description: "Install anti-slip mats",
			Type:        types.ActionTypeCorrective,
			OwnerUserID: "u2",
			DueDate:     testNow.AddDate(0, 0, 7),
		})
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	action, err := env.uc.Incident.AddCorrectiveAction(ctx, &model.CorrectiveAction{
		IncidentID:  res.Record.ID,
		Description: "Install anti-slip mats",
		Type:        types.ActionTypeCorrective,
		OwnerUserID: "u2",
		DueDate:     testNow.AddDate(0, 0, 7),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, action.Status).Equal(types.ActionStatusPending)

	actions, err := env.uc.Incident.ListCorrectiveActions(ctx, res.Record.ID)
	gt.NoError(t, err).Required()
	gt.A(t, actions).Length(1)

	_, err = env.uc.Incident.ChangeActionStatus(ctx, action.ID, types.ActionStatusCompleted, "", "")
	gt.Error(t, err).Is(model.ErrInvalidTransition)

	_, err = env.uc.Incident.ChangeActionStatus(ctx, action.ID, types.ActionStatusInProgress, "", "")
	gt.NoError(t, err).Required()

	done, err := env.uc.Incident.ChangeActionStatus(ctx, action.ID, types.ActionStatusCompleted, "https://example.com/mats.jpg", "installed")
	gt.NoError(t, err).Required()
	gt.Value(t, done.ImplementedAt).NotNil()
	gt.Value(t, done.EvidenceURL).Equal("https://example.com/mats.jpg")
	gt.Value(t, done.Notes).Equal("installed")
}

func TestIncidentUseCase_Statistics(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser("u", types.RoleUser)

	inputs := []*model.Incident{
		newIncident(types.IncidentTypeIncident, time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), 0),
		newIncident(types.IncidentTypeMinorAccident, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 0),
		newIncident(types.IncidentTypeMinorAccident, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), 1),
	}
	inputs[2].Area = "Office"
	for _, in := range inputs {
		_, err := env.uc.Incident.RegisterIncident(ctx, in)
		gt.NoError(t, err).Required()
	}

	s, err := env.uc.Incident.Statistics(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, s.Total).Equal(3)
	gt.Value(t, s.ByType["minor_accident"]).Equal(2)
	gt.Value(t, s.ByArea["Plant"]).Equal(2)
	gt.Value(t, s.ByArea["Office"]).Equal(1)
	gt.Value(t, s.ByMonth).Equal([]model.MonthCount{
		{Month: "2024-04", Count: 1},
		{Month: "2024-05", Count: 2},
	})

	filtered, err := env.uc.Incident.Statistics(ctx, interfaces.WithSince(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	gt.NoError(t, err).Required()
	gt.Value(t, filtered.Total).Equal(2)
}
