package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

type riskDocument struct {
	ID              int64      `firestore:"id"`
	Code            string     `firestore:"code"`
	Description     string     `firestore:"description"`
	Area            string     `firestore:"area"`
	Process         string     `firestore:"process"`
	Type            string     `firestore:"type"`
	Probability     int        `firestore:"probability"`
	Severity        int        `firestore:"severity"`
	Score           int        `firestore:"score"`
	Band            string     `firestore:"band"`
	ControlMeasures string     `firestore:"control_measures"`
	OwnerUserID     string     `firestore:"owner_user_id"`
	Status          string     `firestore:"status"`
	ReviewDate      *time.Time `firestore:"review_date"`
	CreatedBy       string     `firestore:"created_by"`
	EvidenceURLs    []string   `firestore:"evidence_urls"`
	CreatedAt       time.Time  `firestore:"created_at"`
	UpdatedAt       time.Time  `firestore:"updated_at"`
}

func (d riskDocument) docID() int64        { return d.ID }
func (d *riskDocument) created() time.Time { return d.CreatedAt }
func (d *riskDocument) stamp(id int64, c, u time.Time) {
	d.ID, d.CreatedAt, d.UpdatedAt = id, c, u
}

func newRiskDocument(r *model.Risk) *riskDocument {
	return &riskDocument{
		ID:              r.ID,
		Code:            r.Code,
		Description:     r.Description,
		Area:            r.Area,
		Process:         r.Process,
		Type:            string(r.Type),
		Probability:     int(r.Probability),
		Severity:        int(r.Severity),
		Score:           r.Score,
		Band:            string(r.Band),
		ControlMeasures: r.ControlMeasures,
		OwnerUserID:     r.OwnerUserID,
		Status:          string(r.Status),
		ReviewDate:      r.ReviewDate,
		CreatedBy:       r.CreatedBy,
		EvidenceURLs:    r.EvidenceURLs,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		ID:              d.ID,
		Code:            d.Code,
		Description:     d.Description,
		Area:            d.Area,
		Process:         d.Process,
		Type:            types.RiskType(d.Type),
		Probability:     types.Probability(d.Probability),
		Severity:        types.Severity(d.Severity),
		Score:           d.Score,
		Band:            types.RiskBand(d.Band),
		ControlMeasures: d.ControlMeasures,
		OwnerUserID:     d.OwnerUserID,
		Status:          types.RiskStatus(d.Status),
		ReviewDate:      d.ReviewDate,
		CreatedBy:       d.CreatedBy,
		EvidenceURLs:    d.EvidenceURLs,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type riskRepository struct {
	s *entityStore[riskDocument, *riskDocument, model.Risk]
}

func newRiskRepository(client *firestore.Client, prefix string) *riskRepository {
	return &riskRepository{s: &entityStore[riskDocument, *riskDocument, model.Risk]{
		collection: newCollection[riskDocument](client, prefix, "risks", "risk"),
		toDoc:      newRiskDocument,
		toModel:    (*riskDocument).toModel,
		filters:    riskFilters,
	}}
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	return r.s.create(ctx, risk)
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	return r.s.find(ctx, id)
}

func (r *riskRepository) List(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Risk, error) {
	return r.s.list(ctx, opts...)
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	return r.s.update(ctx, risk.ID, risk)
}

func (r *riskRepository) Delete(ctx context.Context, id int64) error {
	return r.s.delete(ctx, id)
}
