package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

type InspectionUseCase struct {
	*base
}

// CreateChecklist stores an inspection template. Items default to yes/no
// answers and the checklist starts active.
func (uc *InspectionUseCase) CreateChecklist(ctx context.Context, input *model.Checklist) (*model.Checklist, error) {
	if err := uc.validate(types.RecordKindChecklist, input.Fields()); err != nil {
		return nil, err
	}

	checklist := *input
	checklist.ID = 0
	checklist.Active = true
	checklist.CreatedBy = model.ActorID(ctx)
	checklist.Items = make([]model.ChecklistItem, len(input.Items))
	for i, item := range input.Items {
		if item.ResponseType == "" {
			item.ResponseType = model.ResponseTypeYesNo
		}
		checklist.Items[i] = item
	}

	created, err := uc.repo.Checklist().Create(ctx, &checklist)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create checklist")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindChecklist)).Inc()
	return created, nil
}

func (uc *InspectionUseCase) GetChecklist(ctx context.Context, id int64) (*model.Checklist, error) {
	c, err := uc.repo.Checklist().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get checklist", goerr.V(model.IDKey, id))
	}
	return c, nil
}

// ListChecklists returns checklists; activeOnly drops retired templates
func (uc *InspectionUseCase) ListChecklists(ctx context.Context, activeOnly bool, opts ...interfaces.ListOption) ([]*model.Checklist, error) {
	checklists, err := uc.repo.Checklist().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list checklists")
	}
	if !activeOnly {
		return checklists, nil
	}

	out := checklists[:0]
	for _, c := range checklists {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

// ScheduleInspection plans an inspection against an active checklist
func (uc *InspectionUseCase) ScheduleInspection(ctx context.Context, input *model.Inspection) (*model.Inspection, error) {
	if err := uc.validate(types.RecordKindInspection, input.Fields()); err != nil {
		return nil, err
	}

	checklist, err := uc.GetChecklist(ctx, input.ChecklistID)
	if err != nil {
		return nil, err
	}
	if !checklist.Active {
		return nil, goerr.Wrap(model.ErrInvalidInput, "checklist is not active",
			goerr.V(model.IDKey, checklist.ID))
	}

	inspection := *input
	inspection.ID = 0
	inspection.Code = model.NewCode(model.CodePrefixInspection, uc.now())
	inspection.Status = types.InspectionStatusScheduled
	inspection.Answers = nil
	inspection.CreatedBy = model.ActorID(ctx)

	created, err := uc.repo.Inspection().Create(ctx, &inspection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create inspection")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindInspection)).Inc()
	return created, nil
}

func (uc *InspectionUseCase) GetInspection(ctx context.Context, id int64) (*model.Inspection, error) {
	x, err := uc.repo.Inspection().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inspection", goerr.V(model.IDKey, id))
	}
	return x, nil
}

func (uc *InspectionUseCase) ListInspections(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Inspection, error) {
	list, err := uc.repo.Inspection().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list inspections")
	}
	return list, nil
}

// InspectionResult is what the inspector records on the way to completion
type InspectionResult struct {
	Observations string
	Answers      []model.InspectionAnswer
}

// ChangeInspectionStatus advances an inspection. Answers must point at
// items of its checklist.
func (uc *InspectionUseCase) ChangeInspectionStatus(ctx context.Context, id int64, status types.InspectionStatus, result *InspectionResult) (*model.Inspection, error) {
	inspection, err := uc.GetInspection(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inspection.Status.CanTransitionTo(status) {
		return nil, transitionError(types.RecordKindInspection, id, inspection.Status, status)
	}

	var checklist *model.Checklist
	if result != nil {
		checklist, err = uc.GetChecklist(ctx, inspection.ChecklistID)
		if err != nil {
			return nil, err
		}
		for _, a := range result.Answers {
			if a.ItemIndex < 0 || a.ItemIndex >= len(checklist.Items) {
				return nil, goerr.Wrap(model.ErrInvalidInput, "answer refers to an unknown checklist item",
					goerr.V("item_index", a.ItemIndex), goerr.V(model.IDKey, id))
			}
		}
		if result.Observations != "" {
			inspection.Observations = result.Observations
		}
		if result.Answers != nil {
			inspection.Answers = result.Answers
		}
	}
	inspection.Status = status

	updated, err := uc.repo.Inspection().Update(ctx, inspection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update inspection status", goerr.V(model.IDKey, id))
	}

	if status == types.InspectionStatusCompleted && checklist != nil {
		if n := updated.NonCompliantCritical(checklist); n > 0 {
			logging.From(ctx).Warn("inspection found critical non-compliance",
				"code", updated.Code, "area", updated.Area, "items", n)
		}
	}
	return updated, nil
}
