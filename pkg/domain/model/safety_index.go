package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// perMillionHours normalizes the indices to one million labor hours
const perMillionHours = 1_000_000

// IncidentAggregate is the input of the legal safety indices for one period
type IncidentAggregate struct {
	DisablingIncidents int
	LostDays           int
	LaborHours         float64
}

// SafetyIndices are the frequency, severity and accident indices of a period.
// Values keep full precision; round only when rendering.
type SafetyIndices struct {
	Frequency float64
	Severity  float64
	Accident  float64
}

// ComputeSafetyIndices derives the indices from an aggregate.
func ComputeSafetyIndices(agg IncidentAggregate) (*SafetyIndices, error) {
	if agg.LaborHours <= 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "labor hours must be positive",
			goerr.V(LaborHoursKey, agg.LaborHours))
	}
	if agg.DisablingIncidents < 0 || agg.LostDays < 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "incident counts must not be negative",
			goerr.V("disabling_incidents", agg.DisablingIncidents),
			goerr.V("lost_days", agg.LostDays))
	}

	frequency := float64(agg.DisablingIncidents) * perMillionHours / agg.LaborHours
	severity := float64(agg.LostDays) * perMillionHours / agg.LaborHours

	return &SafetyIndices{
		Frequency: frequency,
		Severity:  severity,
		Accident:  frequency * severity / 1000,
	}, nil
}

// AggregateIncidents counts disabling accidents for the frequency index and
// sums medical rest days over every incident of the period for the severity
// index. Fatal accidents are reported separately and do not count as
// disabling.
func AggregateIncidents(incidents []*Incident, laborHours float64) IncidentAggregate {
	agg := IncidentAggregate{LaborHours: laborHours}
	for _, inc := range incidents {
		if inc.Type.IsDisabling() {
			agg.DisablingIncidents++
		}
		agg.LostDays += inc.MedicalRestDays
	}
	return agg
}
