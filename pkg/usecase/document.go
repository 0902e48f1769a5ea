package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

type DocumentUseCase struct {
	*base
}

func documentPayload(d *model.Document) model.Payload {
	p := model.Payload{
		"document_id":     d.ID,
		"code":            d.Code,
		"title":           d.Title,
		"type":            string(d.Type),
		"version":         d.Version,
		"alert_lead_days": d.AlertLeadDays,
		"file_url":        d.FileURL,
	}
	if d.ReviewDate != nil {
		p["review_date"] = *d.ReviewDate
	}
	return p
}

// RegisterDocument uploads the file and stores the document. Without a
// file URL the record is invalid, so a failed upload is reported through
// validation.
func (uc *DocumentUseCase) RegisterDocument(ctx context.Context, input *model.Document, file *Attachment) (*Created[model.Document], error) {
	now := uc.now()
	doc := *input
	doc.ID = 0
	doc.Code = model.NewCode(model.CodePrefixDocument, now)
	if doc.Status == "" {
		doc.Status = types.DocumentStatusDraft
	}
	if doc.PreparedBy == "" {
		doc.PreparedBy = model.ActorID(ctx)
	}
	doc.ApplyReviewDefaults()

	result := &Created[model.Document]{}
	if file != nil {
		url, err := uc.upload(ctx, types.BucketDocuments, "documents/"+doc.Code, *file)
		if err != nil {
			result.warn("upload of " + file.Filename + " failed")
		} else {
			doc.FileURL = url
		}
	}

	if err := uc.validate(types.RecordKindDocument, doc.Fields()); err != nil {
		return nil, err
	}

	created, err := uc.repo.Document().Create(ctx, &doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create document")
	}
	metrics.RecordsCreatedTotal.WithLabelValues(string(types.RecordKindDocument)).Inc()

	result.Record = created
	return result, nil
}

func (uc *DocumentUseCase) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	d, err := uc.repo.Document().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get document", goerr.V(model.IDKey, id))
	}
	return d, nil
}

func (uc *DocumentUseCase) ListDocuments(ctx context.Context, opts ...interfaces.ListOption) ([]*model.Document, error) {
	docs, err := uc.repo.Document().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list documents")
	}
	return docs, nil
}

// ChangeDocumentStatus moves a document through draft, current, obsolete
// and archived. The actor is recorded as approver when it becomes current.
func (uc *DocumentUseCase) ChangeDocumentStatus(ctx context.Context, id int64, status types.DocumentStatus) (*model.Document, error) {
	doc, err := uc.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(status) {
		return nil, transitionError(types.RecordKindDocument, id, doc.Status, status)
	}

	doc.Status = status
	if status == types.DocumentStatusCurrent {
		doc.ApprovedBy = model.ActorID(ctx)
	}

	updated, err := uc.repo.Document().Update(ctx, doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update document status", goerr.V(model.IDKey, id))
	}
	return updated, nil
}

// DueForReview returns documents whose review date is within their alert lead time
func (uc *DocumentUseCase) DueForReview(ctx context.Context) ([]*model.Document, error) {
	docs, err := uc.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var out []*model.Document
	for _, d := range docs {
		if d.ReviewDue(now) {
			out = append(out, d)
		}
	}
	return out, nil
}
