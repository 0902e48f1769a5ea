package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/errutil"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

type EPPUseCase struct {
	*base
}

// CreateItem adds protective equipment to the catalog
func (uc *EPPUseCase) CreateItem(ctx context.Context, input *model.EPP) (*model.EPP, error) {
	if err := uc.validate(types.RecordKindEPP, input.Fields()); err != nil {
		return nil, err
	}

	item := *input
	item.ID = 0
	item.Active = true
	if item.Code == "" {
		item.Code = model.NewCode(model.CodePrefixEPP, uc.now())
	}

	created, err := uc.repo.EPP().Create(ctx, &item)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create EPP item")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindEPP)).Inc()
	return created, nil
}

func (uc *EPPUseCase) GetItem(ctx context.Context, id int64) (*model.EPP, error) {
	item, err := uc.repo.EPP().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get EPP item", goerr.V(model.IDKey, id))
	}
	return item, nil
}

// ListItems lists the catalog; lowStockOnly keeps items at or under their
// minimum stock
func (uc *EPPUseCase) ListItems(ctx context.Context, lowStockOnly bool, opts ...interfaces.ListOption) ([]*model.EPP, error) {
	items, err := uc.repo.EPP().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list EPP items")
	}
	if !lowStockOnly {
		return items, nil
	}

	out := items[:0]
	for _, item := range items {
		if item.LowStock() {
			out = append(out, item)
		}
	}
	return out, nil
}

// UpdateStock adds delta units to an item. Negative results are refused.
func (uc *EPPUseCase) UpdateStock(ctx context.Context, id int64, delta int) (*model.EPP, error) {
	item, err := uc.repo.EPP().AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update stock", goerr.V(model.IDKey, id), goerr.V(model.RequestedKey, delta))
	}
	if item.LowStock() {
		logging.From(ctx).Warn("EPP stock is low", "code", item.Code, "stock", item.Stock, "min_stock", item.MinStock)
	}
	return item, nil
}

// Assign hands equipment to a worker. The stock is taken in the same call.
// An explicit ExpiresAt is kept; otherwise the expiry follows the item's
// lifespan.
func (uc *EPPUseCase) Assign(ctx context.Context, input *model.EPPAssignment) (*model.EPPAssignment, error) {
	item, err := uc.GetItem(ctx, input.EPPID)
	if err != nil {
		return nil, err
	}

	assignment := *input
	assignment.ID = 0
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = uc.now()
	}
	if err := uc.validate(types.RecordKindEPPAssignment, assignment.Fields(item.Stock)); err != nil {
		return nil, err
	}
	if assignment.ExpiresAt != nil && assignment.ExpiresAt.Before(assignment.AssignedAt) {
		return nil, goerr.Wrap(model.ErrInvalidDateRange, "expiry must not be before assignment",
			goerr.V(model.FieldKey, "expires_at"), goerr.V(model.ValueKey, *assignment.ExpiresAt))
	}

	// Stock may have changed since the read above; AdjustStock rechecks atomically.
	item, err = uc.repo.EPP().AdjustStock(ctx, item.ID, -assignment.Quantity)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to take stock for assignment",
			goerr.V(model.IDKey, input.EPPID), goerr.V(model.RequestedKey, assignment.Quantity))
	}

	if assignment.ExpiresAt == nil && item.LifespanMonths > 0 {
		expires := item.ExpiryFrom(assignment.AssignedAt)
		assignment.ExpiresAt = &expires
	}
	assignment.Status = types.AssignmentStatusActive
	if assignment.DeliveredBy == "" {
		assignment.DeliveredBy = model.ActorID(ctx)
	}

	created, err := uc.repo.EPPAssignment().Create(ctx, &assignment)
	if err != nil {
		if _, restockErr := uc.repo.EPP().AdjustStock(ctx, item.ID, assignment.Quantity); restockErr != nil {
			errutil.Warn(ctx, goerr.Wrap(restockErr, "failed to restore stock after assignment failure",
				goerr.V(model.IDKey, item.ID), goerr.V(model.RequestedKey, assignment.Quantity)),
				"stock lost for failed assignment")
		}
		return nil, goerr.Wrap(err, "failed to create assignment", goerr.V(model.IDKey, input.EPPID))
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindEPPAssignment)).Inc()
	return created, nil
}

// ListAssignments filters with WithParentID (EPP item), WithUserID and WithStatus
func (uc *EPPUseCase) ListAssignments(ctx context.Context, opts ...interfaces.ListOption) ([]*model.EPPAssignment, error) {
	list, err := uc.repo.EPPAssignment().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assignments")
	}
	return list, nil
}

// ReturnAssignment closes an active assignment. Stock is not restored.
func (uc *EPPUseCase) ReturnAssignment(ctx context.Context, id int64, notes string) (*model.EPPAssignment, error) {
	a, err := uc.repo.EPPAssignment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assignment", goerr.V(model.IDKey, id))
	}
	if !a.Status.CanTransitionTo(types.AssignmentStatusReturned) {
		return nil, transitionError(types.RecordKindEPPAssignment, id, a.Status, types.AssignmentStatusReturned)
	}

	a.Status = types.AssignmentStatusReturned
	if notes != "" {
		a.Notes = notes
	}
	updated, err := uc.repo.EPPAssignment().Update(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to return assignment", goerr.V(model.IDKey, id))
	}
	return updated, nil
}

// ExpiringAssignment is an active assignment close to its expiry
type ExpiringAssignment struct {
	Assignment *model.EPPAssignment
	Item       *model.EPP
	DaysLeft   int
	Level      model.ExpiryAlertLevel
}

// ExpiringAssignments returns active assignments expiring within windowDays,
// including the ones already expired, soonest first.
func (uc *EPPUseCase) ExpiringAssignments(ctx context.Context, windowDays int) ([]*ExpiringAssignment, error) {
	if windowDays < 0 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "window must not be negative", goerr.V(model.ValueKey, windowDays))
	}

	assignments, err := uc.ListAssignments(ctx, interfaces.WithStatus(types.AssignmentStatusActive))
	if err != nil {
		return nil, err
	}

	now := uc.now()
	items := map[int64]*model.EPP{}
	var out []*ExpiringAssignment
	for _, a := range assignments {
		days, ok := a.DaysUntilExpiry(now)
		if !ok || days > windowDays {
			continue
		}

		item, found := items[a.EPPID]
		if !found {
			item, err = uc.GetItem(ctx, a.EPPID)
			if err != nil {
				return nil, err
			}
			items[a.EPPID] = item
		}

		out = append(out, &ExpiringAssignment{
			Assignment: a,
			Item:       item,
			DaysLeft:   days,
			Level:      model.ExpiryAlertLevelFor(days),
		})
	}

	slices.SortFunc(out, func(a, b *ExpiringAssignment) int {
		return a.DaysLeft - b.DaysLeft
	})
	return out, nil
}

// InventoryValue sums stock times unit cost over active items
func (uc *EPPUseCase) InventoryValue(ctx context.Context) (float64, error) {
	items, err := uc.ListItems(ctx, false)
	if err != nil {
		return 0, err
	}
	active := items[:0]
	for _, item := range items {
		if item.Active {
			active = append(active, item)
		}
	}
	return model.InventoryValue(active), nil
}

func expiryPayload(x *ExpiringAssignment) model.Payload {
	var expires time.Time
	if x.Assignment.ExpiresAt != nil {
		expires = *x.Assignment.ExpiresAt
	}
	return model.Payload{
		"assignment_id": x.Assignment.ID,
		"user_id":       x.Assignment.UserID,
		"epp_id":        x.Item.ID,
		"epp_code":      x.Item.Code,
		"epp_name":      x.Item.Name,
		"quantity":      x.Assignment.Quantity,
		"expires_at":    expires,
		"days_left":     x.DaysLeft,
		"level":         string(x.Level),
	}
}
