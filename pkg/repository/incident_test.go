package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func runIncidentRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Run("incident round trip keeps the affected person", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Incident().Create(ctx, &model.Incident{
			Code:            "INC-20260301101500",
			Type:            types.IncidentTypeDisablingAccident,
			OccurredAt:      day(2026, 3, 1),
			Area:            "plant",
			Description:     "Fall from ladder",
			Affected:        model.AffectedPerson{Name: "Ana Quispe", NationalID: "44556677"},
			MedicalRestDays: 12,
			Status:          types.IncidentStatusReported,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Incident().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Affected.Name).Equal("Ana Quispe")
		gt.Value(t, got.MedicalRestDays).Equal(12)
		gt.True(t, got.OccurredAt.Equal(day(2026, 3, 1)))
	})

	t.Run("List filters by type and occurrence window", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, x := range []struct {
			typ types.IncidentType
			at  int
		}{
			{types.IncidentTypeIncident, 5},
			{types.IncidentTypeDisablingAccident, 10},
			{types.IncidentTypeDisablingAccident, 20},
		} {
			_, err := repo.Incident().Create(ctx, &model.Incident{
				Type:        x.typ,
				OccurredAt:  day(2026, 1, x.at),
				Area:        "plant",
				Description: "event",
				Status:      types.IncidentStatusReported,
			})
			gt.NoError(t, err).Required()
		}

		disabling, err := repo.Incident().List(ctx, interfaces.WithType(types.IncidentTypeDisablingAccident))
		gt.NoError(t, err).Required()
		gt.A(t, disabling).Length(2)

		window, err := repo.Incident().List(ctx,
			interfaces.WithSince(day(2026, 1, 5)),
			interfaces.WithUntil(day(2026, 1, 20)))
		gt.NoError(t, err).Required()
		gt.A(t, window).Length(2)
	})

	t.Run("corrective actions are filtered by incident", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, incidentID := range []int64{1, 1, 2} {
			_, err := repo.CorrectiveAction().Create(ctx, &model.CorrectiveAction{
				IncidentID:  incidentID,
				Description: "Install guard rail",
				Type:        types.ActionTypeCorrective,
				OwnerUserID: "owner-1",
				DueDate:     day(2026, 4, 1),
				Status:      types.ActionStatusPending,
			})
			gt.NoError(t, err).Required()
		}

		actions, err := repo.CorrectiveAction().List(ctx, interfaces.WithParentID(1))
		gt.NoError(t, err).Required()
		gt.A(t, actions).Length(2)

		pending, err := repo.CorrectiveAction().List(ctx,
			interfaces.WithParentID(2),
			interfaces.WithStatus(types.ActionStatusPending))
		gt.NoError(t, err).Required()
		gt.A(t, pending).Length(1)
	})
}

func TestIncidentRepository(t *testing.T) {
	runBoth(t, runIncidentRepositoryTest)
}
