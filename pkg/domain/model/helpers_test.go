package model_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func TestNewCode(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC)
	gt.Value(t, model.NewCode(model.CodePrefixRisk, now)).Equal("RISK-20240131154502")
	gt.Value(t, model.NewCode(model.CodePrefixInspection, now)).Equal("INSP-20240131154502")
}

func TestExpiryAlertLevelFor(t *testing.T) {
	tests := []struct {
		days int
		want model.ExpiryAlertLevel
	}{
		{-3, model.ExpiryAlertExpired},
		{0, model.ExpiryAlertExpired},
		{1, model.ExpiryAlertUrgent},
		{7, model.ExpiryAlertUrgent},
		{8, model.ExpiryAlertSoon},
		{15, model.ExpiryAlertSoon},
		{16, model.ExpiryAlertUpcoming},
		{30, model.ExpiryAlertUpcoming},
		{31, model.ExpiryAlertNone},
	}

	for _, tt := range tests {
		gt.Value(t, model.ExpiryAlertLevelFor(tt.days)).Equal(tt.want)
	}
}

func TestEPP_ExpiryAndStock(t *testing.T) {
	epp := &model.EPP{LifespanMonths: 6, Stock: 5, MinStock: 5, UnitCost: 12.5}
	assigned := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	gt.Value(t, epp.ExpiryFrom(assigned)).Equal(assigned.AddDate(0, 0, 180))
	gt.True(t, epp.LowStock())

	epp.Stock = 6
	gt.False(t, epp.LowStock())

	total := model.InventoryValue([]*model.EPP{
		epp,
		{Stock: 10, UnitCost: 3},
	})
	gt.Value(t, total).Equal(105.0)
}

func TestEPPAssignment_DaysUntilExpiry(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	expires := time.Date(2024, 5, 17, 8, 0, 0, 0, time.UTC)
	a := &model.EPPAssignment{ExpiresAt: &expires}

	days, ok := a.DaysUntilExpiry(now)
	gt.True(t, ok)
	gt.Value(t, days).Equal(7)
	gt.Value(t, model.ExpiryAlertLevelFor(days)).Equal(model.ExpiryAlertUrgent)

	_, ok = (&model.EPPAssignment{}).DaysUntilExpiry(now)
	gt.False(t, ok)
}

func TestDocument_ReviewDue(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := &model.Document{
		IssuedAt:               issued,
		RequiresPeriodicReview: true,
		Status:                 types.DocumentStatusCurrent,
	}
	doc.ApplyReviewDefaults()
	gt.Value(t, *doc.ReviewDate).Equal(issued.AddDate(0, 0, 365))
	gt.Value(t, doc.AlertLeadDays).Equal(30)

	gt.False(t, doc.ReviewDue(doc.ReviewDate.AddDate(0, 0, -31)))
	gt.True(t, doc.ReviewDue(doc.ReviewDate.AddDate(0, 0, -30)))
	gt.True(t, doc.ReviewDue(doc.ReviewDate.AddDate(0, 0, 2)))

	doc.Status = types.DocumentStatusArchived
	gt.False(t, doc.ReviewDue(*doc.ReviewDate))

	doc.Status = types.DocumentStatusDraft
	gt.False(t, doc.ReviewDue(*doc.ReviewDate))

	doc.Status = types.DocumentStatusObsolete
	gt.False(t, doc.ReviewDue(*doc.ReviewDate))
}

func TestCorrectiveAction_IsOverdue(t *testing.T) {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	a := &model.CorrectiveAction{DueDate: due, Status: types.ActionStatusInProgress}
	gt.True(t, a.IsOverdue(due.Add(time.Hour)))
	gt.False(t, a.IsOverdue(due.Add(-time.Hour)))

	a.Status = types.ActionStatusCompleted
	gt.False(t, a.IsOverdue(due.Add(time.Hour)))
}

func TestTraining_StartsWithin(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tr := &model.Training{ScheduledAt: now.Add(48 * time.Hour), Status: types.TrainingStatusScheduled}
	gt.True(t, tr.StartsWithin(now, 72*time.Hour))
	gt.False(t, tr.StartsWithin(now, 24*time.Hour))

	tr.Status = types.TrainingStatusCancelled
	gt.False(t, tr.StartsWithin(now, 72*time.Hour))
}

func TestCountByMonth(t *testing.T) {
	got := model.CountByMonth([]time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	gt.A(t, got).Length(2).Required()
	gt.Value(t, got[0]).Equal(model.MonthCount{Month: "2024-01", Count: 1})
	gt.Value(t, got[1]).Equal(model.MonthCount{Month: "2024-03", Count: 2})
}

func TestInspection_NonCompliantCritical(t *testing.T) {
	checklist := &model.Checklist{Items: []model.ChecklistItem{
		{Question: "Extintores vigentes", Critical: true},
		{Question: "Orden y limpieza"},
	}}
	insp := &model.Inspection{Answers: []model.InspectionAnswer{
		{ItemIndex: 0, Compliant: false},
		{ItemIndex: 1, Compliant: false},
		{ItemIndex: 9, Compliant: false},
	}}
	gt.Value(t, insp.NonCompliantCritical(checklist)).Equal(1)
}

func TestSession(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: "u1", Role: types.RoleSupervisor}
	s, err := model.NewSession(user, now, time.Hour)
	gt.NoError(t, err).Required()
	gt.Value(t, s.UserID).Equal("u1")
	gt.Value(t, s.Role).Equal(types.RoleSupervisor)
	gt.True(t, s.IsValid(now))
	gt.False(t, s.IsValid(now.Add(2*time.Hour)))

	other, err := model.NewSession(user, now, time.Hour)
	gt.NoError(t, err).Required()
	gt.NotEqual(t, s.ID, other.ID)
	gt.NotEqual(t, s.Secret, other.Secret)
}

func TestAuthContext(t *testing.T) {
	ctx := context.Background()
	_, ok := model.GetAuthContext(ctx)
	gt.False(t, ok)
	gt.Value(t, model.ActorID(ctx)).Equal("")

	ctx = model.WithAuthContext(ctx, &model.AuthContext{UserID: "u9", Role: types.RoleAdmin})
	auth, ok := model.GetAuthContext(ctx)
	gt.True(t, ok)
	gt.True(t, auth.Allows(types.RoleSupervisor))
	gt.Value(t, model.ActorID(ctx)).Equal("u9")

	var none *model.AuthContext
	gt.False(t, none.Allows(types.RoleUser))
}
