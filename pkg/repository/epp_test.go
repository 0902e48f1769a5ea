package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func runEPPRepositoryTest(t *testing.T, newRepo repoFactory) {
	newItem := func(t *testing.T, repo interfaces.Repository, stock int) *model.EPP {
		item, err := repo.EPP().Create(context.Background(), &model.EPP{
			Code:           "EPP-20260101000000",
			Name:           "Safety helmet",
			Type:           types.EPPTypeHead,
			LifespanMonths: 12,
			MinStock:       5,
			Stock:          stock,
			UnitCost:       35.5,
			Active:         true,
		})
		gt.NoError(t, err).Required()
		return item
	}

	t.Run("AdjustStock adds and removes units", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		item := newItem(t, repo, 10)

		updated, err := repo.EPP().AdjustStock(ctx, item.ID, -3)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Stock).Equal(7)

		updated, err = repo.EPP().AdjustStock(ctx, item.ID, 5)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Stock).Equal(12)
	})

	t.Run("AdjustStock refuses to go negative", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		item := newItem(t, repo, 2)

		_, err := repo.EPP().AdjustStock(ctx, item.ID, -3)
		gt.Error(t, err).Is(model.ErrInsufficientStock)

		got, err := repo.EPP().Get(ctx, item.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Stock).Equal(2)
	})

	t.Run("concurrent decrements never oversell", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		item := newItem(t, repo, 5)

		var (
			wg sync.WaitGroup
			mu sync.Mutex
			ok int
		)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.EPP().AdjustStock(ctx, item.ID, -1); err == nil {
					mu.Lock()
					ok++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		gt.Value(t, ok).Equal(5)
		got, err := repo.EPP().Get(ctx, item.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Stock).Equal(0)
	})

	t.Run("assignments are filtered by worker and item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		item := newItem(t, repo, 10)
		expires := day(2027, 1, 1)

		for _, userID := range []string{"user-1", "user-1", "user-2"} {
			_, err := repo.EPPAssignment().Create(ctx, &model.EPPAssignment{
				EPPID:      item.ID,
				UserID:     userID,
				Quantity:   1,
				AssignedAt: day(2026, 1, 1),
				ExpiresAt:  &expires,
				Status:     types.AssignmentStatusActive,
			})
			gt.NoError(t, err).Required()
		}

		mine, err := repo.EPPAssignment().List(ctx, interfaces.WithUserID("user-1"))
		gt.NoError(t, err).Required()
		gt.A(t, mine).Length(2).Required()
		gt.True(t, mine[0].ExpiresAt.Equal(expires))

		byItem, err := repo.EPPAssignment().List(ctx,
			interfaces.WithParentID(item.ID),
			interfaces.WithStatus(types.AssignmentStatusActive))
		gt.NoError(t, err).Required()
		gt.A(t, byItem).Length(3)
	})
}

func TestEPPRepository(t *testing.T) {
	runBoth(t, runEPPRepositoryTest)
}
