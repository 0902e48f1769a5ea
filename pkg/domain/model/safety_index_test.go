package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func TestComputeSafetyIndices(t *testing.T) {
	got, err := model.ComputeSafetyIndices(model.IncidentAggregate{
		DisablingIncidents: 2,
		LostDays:           50,
		LaborHours:         100000,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, got.Frequency).Equal(20.0)
	gt.Value(t, got.Severity).Equal(500.0)
	gt.Value(t, got.Accident).Equal(10.0)
}

func TestComputeSafetyIndices_NoIncidents(t *testing.T) {
	got, err := model.ComputeSafetyIndices(model.IncidentAggregate{LaborHours: 250000})
	gt.NoError(t, err).Required()
	gt.Value(t, got.Frequency).Equal(0.0)
	gt.Value(t, got.Severity).Equal(0.0)
	gt.Value(t, got.Accident).Equal(0.0)
}

func TestComputeSafetyIndices_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		agg  model.IncidentAggregate
	}{
		{"zero hours", model.IncidentAggregate{DisablingIncidents: 1, LostDays: 3, LaborHours: 0}},
		{"negative hours", model.IncidentAggregate{LaborHours: -10}},
		{"negative incidents", model.IncidentAggregate{DisablingIncidents: -1, LaborHours: 1000}},
		{"negative days", model.IncidentAggregate{LostDays: -5, LaborHours: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.ComputeSafetyIndices(tt.agg)
			gt.Error(t, err).Is(model.ErrInvalidInput)
		})
	}
}

func TestAggregateIncidents(t *testing.T) {
	t.Run("only disabling accidents are counted, rest days come from every incident", func(t *testing.T) {
		incidents := []*model.Incident{
			{Type: types.IncidentTypeDisablingAccident, MedicalRestDays: 10},
			{Type: types.IncidentTypeFatalAccident},
			{Type: types.IncidentTypeMinorAccident, MedicalRestDays: 2},
		}

		agg := model.AggregateIncidents(incidents, 100000)
		gt.Value(t, agg.DisablingIncidents).Equal(1)
		gt.Value(t, agg.LostDays).Equal(12)
		gt.Value(t, agg.LaborHours).Equal(100000.0)

		indices, err := model.ComputeSafetyIndices(agg)
		gt.NoError(t, err).Required()
		gt.Value(t, indices.Frequency).Equal(10.0)
		gt.Value(t, indices.Severity).Equal(120.0)
		gt.Value(t, indices.Accident).Equal(1.2)
	})

	t.Run("every incident type contributes rest days", func(t *testing.T) {
		incidents := []*model.Incident{
			{Type: types.IncidentTypeDisablingAccident, MedicalRestDays: 10},
			{Type: types.IncidentTypeFatalAccident, MedicalRestDays: 40},
			{Type: types.IncidentTypeMinorAccident, MedicalRestDays: 2},
			{Type: types.IncidentTypeIncident},
			{Type: types.IncidentTypeOccupationalDisease, MedicalRestDays: 7},
		}

		agg := model.AggregateIncidents(incidents, 100000)
		gt.Value(t, agg.DisablingIncidents).Equal(1)
		gt.Value(t, agg.LostDays).Equal(59)
	})

	t.Run("no incidents", func(t *testing.T) {
		agg := model.AggregateIncidents(nil, 5000)
		gt.Value(t, agg.DisablingIncidents).Equal(0)
		gt.Value(t, agg.LostDays).Equal(0)
	})
}
