package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func TestRiskBand(t *testing.T) {
	tests := []struct {
		band   types.RiskBand
		rank   int
		notify bool
	}{
		{types.RiskBandLow, 1, false},
		{types.RiskBandMedium, 2, false},
		{types.RiskBandHigh, 3, true},
		{types.RiskBandCritical, 4, true},
		{types.RiskBand("extreme"), 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.band), func(t *testing.T) {
			gt.Value(t, tt.band.Rank()).Equal(tt.rank)
			gt.Value(t, tt.band.RequiresNotification()).Equal(tt.notify)
			gt.Value(t, tt.band.IsValid()).Equal(tt.rank > 0)
		})
	}
}

func TestLevel(t *testing.T) {
	gt.True(t, types.Probability(1).IsValid())
	gt.True(t, types.Probability(5).IsValid())
	gt.False(t, types.Probability(0).IsValid())
	gt.False(t, types.Severity(6).IsValid())
	gt.False(t, types.Severity(-1).IsValid())
}

func TestIncidentType_IsDisabling(t *testing.T) {
	gt.True(t, types.IncidentTypeDisablingAccident.IsDisabling())
	gt.False(t, types.IncidentTypeFatalAccident.IsDisabling())
	gt.False(t, types.IncidentTypeMinorAccident.IsDisabling())
	gt.False(t, types.IncidentTypeIncident.IsDisabling())
	gt.False(t, types.IncidentTypeOccupationalDisease.IsDisabling())

	gt.True(t, types.IncidentTypeMinorAccident.IsAccident())
	gt.False(t, types.IncidentTypeIncident.IsAccident())
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name string
		role types.Role
		min  types.Role
		want bool
	}{
		{"admin over supervisor", types.RoleAdmin, types.RoleSupervisor, true},
		{"supervisor over user", types.RoleSupervisor, types.RoleUser, true},
		{"same role", types.RoleSupervisor, types.RoleSupervisor, true},
		{"user below supervisor", types.RoleUser, types.RoleSupervisor, false},
		{"supervisor below admin", types.RoleSupervisor, types.RoleAdmin, false},
		{"unknown role", types.Role("root"), types.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.role.AtLeast(tt.min)).Equal(tt.want)
		})
	}
}

func TestParseCatalogValue(t *testing.T) {
	v, err := types.ParseCatalogValue("first_aid", types.TrainingType.IsValid)
	gt.NoError(t, err)
	gt.Value(t, v).Equal(types.TrainingType("first_aid"))

	_, err = types.ParseCatalogValue("juggling", types.TrainingType.IsValid)
	gt.Error(t, err)
}

func TestReportFormat(t *testing.T) {
	f, err := types.ParseReportFormat("pdf")
	gt.NoError(t, err)
	gt.Value(t, f.ContentType()).Equal("application/pdf")

	_, err = types.ParseReportFormat("docx")
	gt.Error(t, err)
}

func TestBucketAndEvents(t *testing.T) {
	for _, b := range types.AllBuckets() {
		gt.True(t, b.IsValid())
	}
	gt.False(t, types.Bucket("backups").IsValid())

	gt.A(t, types.AllEventTypes()).Length(6)
	gt.True(t, types.EventCriticalRiskIdentified.IsValid())
	gt.False(t, types.EventType("risk_updated").IsValid())
}
