package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func newTestRisk(area string, p, s int) *model.Risk {
	r := &model.Risk{
		Code:        "RISK-20260101000000",
		Description: "Exposure to noise in " + area,
		Area:        area,
		Type:        types.RiskTypePhysical,
		Status:      types.RiskStatusIdentified,
		OwnerUserID: "owner-1",
		EvidenceURLs: []string{
			"https://storage.googleapis.com/evidence/risks/1.jpg",
		},
	}
	a, err := model.Classify(p, s)
	if err != nil {
		panic(err)
	}
	r.ApplyAssessment(a)
	return r
}

func runRiskRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Run("Create assigns sequential IDs and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Risk().Create(ctx, newTestRisk("warehouse", 2, 3))
		gt.NoError(t, err).Required()
		second, err := repo.Risk().Create(ctx, newTestRisk("office", 1, 1))
		gt.NoError(t, err).Required()

		gt.Value(t, first.ID).Equal(int64(1))
		gt.Value(t, second.ID).Equal(int64(2))
		gt.False(t, first.CreatedAt.IsZero())
		gt.False(t, first.UpdatedAt.IsZero())
	})

	t.Run("Get returns the stored risk", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, newTestRisk("warehouse", 4, 5))
		gt.NoError(t, err).Required()

		got, err := repo.Risk().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Description).Equal(created.Description)
		gt.Value(t, got.Score).Equal(20)
		gt.Value(t, got.Band).Equal(types.RiskBandCritical)
		gt.Value(t, got.Status).Equal(types.RiskStatusIdentified)
		gt.A(t, got.EvidenceURLs).Length(1)
	})

	t.Run("Get fails for a missing risk", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Risk().Get(context.Background(), 999)
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("List filters by area and status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Risk().Create(ctx, newTestRisk("warehouse", 2, 2))
		gt.NoError(t, err).Required()
		_, err = repo.Risk().Create(ctx, newTestRisk("office", 3, 3))
		gt.NoError(t, err).Required()
		controlled := newTestRisk("warehouse", 1, 2)
		controlled.Status = types.RiskStatusControlled
		_, err = repo.Risk().Create(ctx, controlled)
		gt.NoError(t, err).Required()

		all, err := repo.Risk().List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, all).Length(3)

		warehouse, err := repo.Risk().List(ctx, interfaces.WithArea("warehouse"))
		gt.NoError(t, err).Required()
		gt.A(t, warehouse).Length(2)

		identified, err := repo.Risk().List(ctx,
			interfaces.WithArea("warehouse"),
			interfaces.WithStatus(types.RiskStatusIdentified))
		gt.NoError(t, err).Required()
		gt.A(t, identified).Length(1)
	})

	t.Run("Update keeps the creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, newTestRisk("warehouse", 2, 2))
		gt.NoError(t, err).Required()

		created.Status = types.RiskStatusInControl
		created.ControlMeasures = "Hearing protection"
		updated, err := repo.Risk().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.RiskStatusInControl)
		gt.True(t, updated.CreatedAt.Sub(created.CreatedAt).Abs() < time.Millisecond)

		got, err := repo.Risk().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ControlMeasures).Equal("Hearing protection")
	})

	t.Run("Update fails for a missing risk", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Risk().Update(context.Background(), &model.Risk{ID: 42})
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("Delete removes the risk", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, newTestRisk("warehouse", 2, 2))
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Risk().Delete(ctx, created.ID)).Required()

		_, err = repo.Risk().Get(ctx, created.ID)
		gt.Error(t, err).Is(model.ErrNotFound)
	})
}

func TestRiskRepository(t *testing.T) {
	runBoth(t, runRiskRepositoryTest)
}
