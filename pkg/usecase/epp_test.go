package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/repository/memory"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

func newEPP(stock, lifespanMonths int) *model.EPP {
	return &model.EPP{
		Name:           "Safety helmet",
		Type:           types.EPPTypeHead,
		LifespanMonths: lifespanMonths,
		MinStock:       2,
		Stock:          stock,
		UnitCost:       35.5,
	}
}

func TestEPPUseCase_Assign(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser("sup", types.RoleSupervisor)

	item, err := env.uc.EPP.CreateItem(ctx, newEPP(5, 6))
	gt.NoError(t, err).Required()
	gt.True(t, item.Active)
	gt.Value(t, item.Code).Equal("EPP-20240615100000")

	t.Run("more than available stock is rejected", func(t *testing.T) {
		_, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{EPPID: item.ID, UserID: "w1", Quantity: 6})
		gt.Error(t, err).Is(model.ErrInsufficientStock)

		got, err := env.uc.EPP.GetItem(ctx, item.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Stock).Equal(5)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		_, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{EPPID: item.ID, UserID: "w1", Quantity: 0})
		gt.Error(t, err).Is(model.ErrInvalidInput)
	})

	a, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{EPPID: item.ID, UserID: "w1", Quantity: 2})
	gt.NoError(t, err).Required()
	gt.Value(t, a.Status).Equal(types.AssignmentStatusActive)
	gt.Value(t, a.AssignedAt).Equal(testNow)
	gt.Value(t, a.DeliveredBy).Equal("sup")
	gt.Value(t, a.ExpiresAt).NotNil().Required()
	gt.Value(t, *a.ExpiresAt).Equal(testNow.AddDate(0, 0, 180))

	got, err := env.uc.EPP.GetItem(ctx, item.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Stock).Equal(3)

	returned, err := env.uc.EPP.ReturnAssignment(ctx, a.ID, "worn out strap")
	gt.NoError(t, err).Required()
	gt.Value(t, returned.Status).Equal(types.AssignmentStatusReturned)
	gt.Value(t, returned.Notes).Equal("worn out strap")

	_, err = env.uc.EPP.ReturnAssignment(ctx, a.ID, "")
	gt.Error(t, err).Is(model.ErrInvalidTransition)

	// returning does not restock
	got, err = env.uc.EPP.GetItem(ctx, item.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Stock).Equal(3)

	byUser, err := env.uc.EPP.ListAssignments(ctx, interfaces.WithUserID("w1"))
	gt.NoError(t, err).Required()
	gt.A(t, byUser).Length(1)
}

func TestEPPUseCase_Stock(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser("sup", types.RoleSupervisor)

	low, err := env.uc.EPP.CreateItem(ctx, newEPP(2, 6))
	gt.NoError(t, err).Required()
	_, err = env.uc.EPP.CreateItem(ctx, newEPP(10, 6))
	gt.NoError(t, err).Required()

	items, err := env.uc.EPP.ListItems(ctx, true)
	gt.NoError(t, err).Required()
	gt.A(t, items).Length(1).Required()
	gt.Value(t, items[0].ID).Equal(low.ID)

	updated, err := env.uc.EPP.UpdateStock(ctx, low.ID, 8)
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Stock).Equal(10)

	_, err = env.uc.EPP.UpdateStock(ctx, low.ID, -11)
	gt.Error(t, err).Is(model.ErrInsufficientStock)

	value, err := env.uc.EPP.InventoryValue(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, value).Equal(20 * 35.5)

	_, err = env.uc.EPP.CreateItem(ctx, newEPP(-1, 0))
	gt.Error(t, err).Is(model.ErrInvalidInput)
}

func TestEPPUseCase_ExpiringAssignments(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser("sup", types.RoleSupervisor)

	short, err := env.uc.EPP.CreateItem(ctx, newEPP(5, 1))
	gt.NoError(t, err).Required()
	long, err := env.uc.EPP.CreateItem(ctx, newEPP(5, 12))
	gt.NoError(t, err).Required()

	soon, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{
		EPPID: short.ID, UserID: "w1", Quantity: 1, AssignedAt: testNow.AddDate(0, 0, -25),
	})
	gt.NoError(t, err).Required()
	later, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{EPPID: short.ID, UserID: "w2", Quantity: 1})
	gt.NoError(t, err).Required()
	_, err = env.uc.EPP.Assign(ctx, &model.EPPAssignment{EPPID: long.ID, UserID: "w3", Quantity: 1})
	gt.NoError(t, err).Required()

	expiring, err := env.uc.EPP.ExpiringAssignments(ctx, 30)
	gt.NoError(t, err).Required()
	gt.A(t, expiring).Length(2).Required()

	gt.Value(t, expiring[0].Assignment.ID).Equal(soon.ID)
	gt.Value(t, expiring[0].DaysLeft).Equal(5)
	gt.Value(t, expiring[0].Level).Equal(model.ExpiryAlertUrgent)
	gt.Value(t, expiring[1].Assignment.ID).Equal(later.ID)
	gt.Value(t, expiring[1].Level).Equal(model.ExpiryAlertUpcoming)

	_, err = env.uc.EPP.ExpiringAssignments(ctx, -1)
	gt.Error(t, err).Is(model.ErrInvalidInput)
}

func TestEPPUseCase_AssignWithExplicitExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser("sup", types.RoleSupervisor)

	item, err := env.uc.EPP.CreateItem(ctx, newEPP(5, 6))
	gt.NoError(t, err).Required()

	t.Run("given expiry is kept", func(t *testing.T) {
		expires := testNow.AddDate(0, 0, 45)
		a, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{
			EPPID: item.ID, UserID: "w1", Quantity: 1, ExpiresAt: &expires,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, a.ExpiresAt).NotNil().Required()
		gt.Value(t, *a.ExpiresAt).Equal(expires)
	})

	t.Run("missing expiry falls back to the lifespan", func(t *testing.T) {
		a, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{EPPID: item.ID, UserID: "w2", Quantity: 1})
		gt.NoError(t, err).Required()
		gt.Value(t, a.ExpiresAt).NotNil().Required()
		gt.Value(t, *a.ExpiresAt).Equal(testNow.AddDate(0, 0, 180))
	})

	t.Run("expiry before assignment is rejected without taking stock", func(t *testing.T) {
		before := testNow.Add(-24 * time.Hour)
		_, err := env.uc.EPP.Assign(ctx, &model.EPPAssignment{
			EPPID: item.ID, UserID: "w3", Quantity: 1, ExpiresAt: &before,
		})
		gt.Error(t, err).Is(model.ErrInvalidDateRange)

		got, err := env.uc.EPP.GetItem(ctx, item.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Stock).Equal(3)
	})
}

type brokenAssignments struct {
	interfaces.EPPAssignmentRepository
}

func (brokenAssignments) Create(context.Context, *model.EPPAssignment) (*model.EPPAssignment, error) {
	return nil, goerr.Wrap(model.ErrRemoteUnavailable, "store is down")
}

type brokenAssignmentRepo struct {
	*memory.Memory
}

func (r brokenAssignmentRepo) EPPAssignment() interfaces.EPPAssignmentRepository {
	return brokenAssignments{r.Memory.EPPAssignment()}
}

func TestEPPUseCase_AssignRestoresStockOnFailure(t *testing.T) {
	repo := brokenAssignmentRepo{Memory: memory.New()}
	uc := usecase.New(repo, usecase.WithClock(func() time.Time { return testNow }))
	ctx := asUser("sup", types.RoleSupervisor)

	item, err := uc.EPP.CreateItem(ctx, newEPP(5, 6))
	gt.NoError(t, err).Required()

	_, err = uc.EPP.Assign(ctx, &model.EPPAssignment{EPPID: item.ID, UserID: "w1", Quantity: 3})
	gt.Error(t, err).Is(model.ErrRemoteUnavailable)

	got, err := uc.EPP.GetItem(ctx, item.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Stock).Equal(5)
}
