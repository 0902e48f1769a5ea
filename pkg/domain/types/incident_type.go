package types

// IncidentType classifies an occupational event by outcome
type IncidentType string

const (
	IncidentTypeIncident            IncidentType = "incident"
	IncidentTypeMinorAccident       IncidentType = "minor_accident"
	IncidentTypeDisablingAccident   IncidentType = "disabling_accident"
	IncidentTypeFatalAccident       IncidentType = "fatal_accident"
	IncidentTypeOccupationalDisease IncidentType = "occupational_disease"
)

// AllIncidentTypes returns all valid incident types
func AllIncidentTypes() []IncidentType {
	return []IncidentType{
		IncidentTypeIncident,
		IncidentTypeMinorAccident,
		IncidentTypeDisablingAccident,
		IncidentTypeFatalAccident,
		IncidentTypeOccupationalDisease,
	}
}

// IsValid checks if the incident type is valid
func (t IncidentType) IsValid() bool {
	switch t {
	case IncidentTypeIncident,
		IncidentTypeMinorAccident,
		IncidentTypeDisablingAccident,
		IncidentTypeFatalAccident,
		IncidentTypeOccupationalDisease:
		return true
	default:
		return false
	}
}

// IsAccident is true for every accident type
func (t IncidentType) IsAccident() bool {
	switch t {
	case IncidentTypeMinorAccident,
		IncidentTypeDisablingAccident,
		IncidentTypeFatalAccident:
		return true
	default:
		return false
	}
}

// IsDisabling is true for the accidents counted by the frequency index
func (t IncidentType) IsDisabling() bool {
	return t == IncidentTypeDisablingAccident
}

// Label returns the display name used in reports
func (t IncidentType) Label() string {
	switch t {
	case IncidentTypeIncident:
		return "Incident"
	case IncidentTypeMinorAccident:
		return "Minor accident"
	case IncidentTypeDisablingAccident:
		return "Disabling accident"
	case IncidentTypeFatalAccident:
		return "Fatal accident"
	case IncidentTypeOccupationalDisease:
		return "Occupational disease"
	default:
		return string(t)
	}
}

func (t IncidentType) String() string {
	return string(t)
}
