package memory

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/model"
)

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneRisk(r *model.Risk) *model.Risk {
	c := *r
	c.ReviewDate = copyTime(r.ReviewDate)
	c.EvidenceURLs = copySlice(r.EvidenceURLs)
	return &c
}

func cloneIncident(x *model.Incident) *model.Incident {
	c := *x
	c.EvidenceURLs = copySlice(x.EvidenceURLs)
	c.ReportedToAuthorityAt = copyTime(x.ReportedToAuthorityAt)
	return &c
}

func cloneAction(x *model.CorrectiveAction) *model.CorrectiveAction {
	c := *x
	c.ImplementedAt = copyTime(x.ImplementedAt)
	return &c
}

func cloneTraining(x *model.Training) *model.Training {
	c := *x
	return &c
}

func cloneAttendee(x *model.Attendee) *model.Attendee {
	c := *x
	if x.Score != nil {
		s := *x.Score
		c.Score = &s
	}
	return &c
}

func cloneChecklist(x *model.Checklist) *model.Checklist {
	c := *x
	c.Items = copySlice(x.Items)
	return &c
}

func cloneInspection(x *model.Inspection) *model.Inspection {
	c := *x
	c.Answers = copySlice(x.Answers)
	return &c
}

func cloneEPP(x *model.EPP) *model.EPP {
	c := *x
	return &c
}

func cloneAssignment(x *model.EPPAssignment) *model.EPPAssignment {
	c := *x
	c.ExpiresAt = copyTime(x.ExpiresAt)
	return &c
}

func cloneDocument(x *model.Document) *model.Document {
	c := *x
	c.ValidUntil = copyTime(x.ValidUntil)
	c.ReviewDate = copyTime(x.ReviewDate)
	return &c
}
