package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

type RiskUseCase struct {
	*base
}

// needsAlert is true for bands that are reported as critical risks
func needsAlert(band types.RiskBand) bool {
	return band == types.RiskBandHigh || band == types.RiskBandCritical
}

func riskPayload(r *model.Risk) model.Payload {
	return model.Payload{
		"risk_id":          r.ID,
		"code":             r.Code,
		"description":      r.Description,
		"area":             r.Area,
		"type":             string(r.Type),
		"probability":      int(r.Probability),
		"severity":         int(r.Severity),
		"score":            r.Score,
		"band":             string(r.Band),
		"control_measures": r.ControlMeasures,
	}
}

// CreateRisk classifies, validates and stores a risk. High and critical
// risks are announced.
func (uc *RiskUseCase) CreateRisk(ctx context.Context, input *model.Risk, evidence ...Attachment) (*Created[model.Risk], error) {
	if err := uc.validate(types.RecordKindRisk, input.Fields()); err != nil {
		return nil, err
	}

	assessment, err := model.Classify(int(input.Probability), int(input.Severity))
	if err != nil {
		return nil, err
	}

	now := uc.now()
	risk := *input
	risk.ID = 0
	risk.ApplyAssessment(assessment)
	risk.Code = model.NewCode(model.CodePrefixRisk, now)
	risk.CreatedBy = model.ActorID(ctx)
	if risk.Status == "" {
		risk.Status = types.RiskStatusIdentified
	} else if !risk.Status.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidInput, "invalid risk status", goerr.V(model.ValueKey, risk.Status))
	}

	result := &Created[model.Risk]{}
	risk.EvidenceURLs = append(risk.EvidenceURLs,
		uc.uploadAll(ctx, types.BucketEvidence, "risks/"+risk.Code, evidence, result.warn)...)

	created, err := uc.repo.Risk().Create(ctx, &risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindRisk)).Inc()
	logging.From(ctx).Info("risk created", "id", created.ID, "code", created.Code, "band", created.Band)

	if needsAlert(created.Band) {
		uc.notify.fire(ctx, types.EventCriticalRiskIdentified, riskPayload(created))
	}

	result.Record = created
	return result, nil
}

func (uc *RiskUseCase) GetRisk(ctx context.Context, id int64) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(model.IDKey, id))
	}
	return risk, nil
}

func (uc *RiskUseCase) ListRisks(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}
	return risks, nil
}

// UpdateRisk replaces the editable fields and re-classifies. An alert is sent
// when the band rises into high or critical.
func (uc *RiskUseCase) UpdateRisk(ctx context.Context, id int64, input *model.Risk) (*model.Risk, error) {
	existing, err := uc.GetRisk(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.validate(types.RecordKindRisk, input.Fields()); err != nil {
		return nil, err
	}
	assessment, err := model.Classify(int(input.Probability), int(input.Severity))
	if err != nil {
		return nil, err
	}

	next := *existing
	next.Description = input.Description
	next.Area = input.Area
	next.Process = input.Process
	next.Type = input.Type
	next.ControlMeasures = input.ControlMeasures
	next.OwnerUserID = input.OwnerUserID
	next.ReviewDate = input.ReviewDate
	next.ApplyAssessment(assessment)

	updated, err := uc.repo.Risk().Update(ctx, &next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(model.IDKey, id))
	}

	if needsAlert(updated.Band) && !needsAlert(existing.Band) {
		uc.notify.fire(ctx, types.EventCriticalRiskIdentified, riskPayload(updated))
	}
	return updated, nil
}

// ChangeRiskStatus moves a risk along its control lifecycle
func (uc *RiskUseCase) ChangeRiskStatus(ctx context.Context, id int64, status types.RiskStatus) (*model.Risk, error) {
	risk, err := uc.GetRisk(ctx, id)
	if err != nil {
		return nil, err
	}
	if !risk.Status.CanTransitionTo(status) {
		return nil, transitionError(types.RecordKindRisk, id, risk.Status, status)
	}

	risk.Status = status
	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk status", goerr.V(model.IDKey, id))
	}
	return updated, nil
}

// AttachEvidence uploads files and links them to the risk
func (uc *RiskUseCase) AttachEvidence(ctx context.Context, id int64, files ...Attachment) (*Created[model.Risk], error) {
	risk, err := uc.GetRisk(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &Created[model.Risk]{}
	urls := uc.uploadAll(ctx, types.BucketEvidence, "risks/"+risk.Code, files, result.warn)
	if len(urls) == 0 {
		result.Record = risk
		return result, nil
	}

	risk.EvidenceURLs = append(risk.EvidenceURLs, urls...)
	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to link evidence", goerr.V(model.IDKey, id))
	}
	result.Record = updated
	return result, nil
}

func (uc *RiskUseCase) DeleteRisk(ctx context.Context, id int64) error {
	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V(model.IDKey, id))
	}
	return nil
}

// Dashboard counts risks by band, type and status
func (uc *RiskUseCase) Dashboard(ctx context.Context, opts ...interfaces.ListOption) (*model.RiskDashboard, error) {
	risks, err := uc.ListRisks(ctx, opts...)
	if err != nil {
		return nil, err
	}

	d := &model.RiskDashboard{
		Total:    len(risks),
		ByBand:   map[string]int{},
		ByType:   map[string]int{},
		ByStatus: map[string]int{},
	}
	for _, band := range types.AllRiskBands() {
		d.ByBand[string(band)] = 0
	}
	for _, r := range risks {
		d.ByBand[string(r.Band)]++
		d.ByType[string(r.Type)]++
		d.ByStatus[string(r.Status)]++
	}
	return d, nil
}

// Matrix returns the probability by severity grid with the number of risks
// in each cell
func (uc *RiskUseCase) Matrix(ctx context.Context, opts ...interfaces.ListOption) ([][]MatrixCount, error) {
	risks, err := uc.ListRisks(ctx, opts...)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, r := range risks {
		counts[fmt.Sprintf("%d:%d", r.Probability, r.Severity)]++
	}

	grid := model.RiskMatrix()
	out := make([][]MatrixCount, len(grid))
	for i, row := range grid {
		out[i] = make([]MatrixCount, len(row))
		for j, cell := range row {
			out[i][j] = MatrixCount{
				MatrixCell: cell,
				Risks:      counts[fmt.Sprintf("%d:%d", cell.Probability, cell.Severity)],
			}
		}
	}
	return out, nil
}

// MatrixCount is a matrix cell with the number of risks classified into it
type MatrixCount struct {
	model.MatrixCell
	Risks int
}
