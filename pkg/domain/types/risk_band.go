package types

// RiskBand is the qualitative classification of a risk score
type RiskBand string

const (
	RiskBandLow      RiskBand = "low"
	RiskBandMedium   RiskBand = "medium"
	RiskBandHigh     RiskBand = "high"
	RiskBandCritical RiskBand = "critical"
)

// AllRiskBands returns all bands, lowest first
func AllRiskBands() []RiskBand {
	return []RiskBand{
		RiskBandLow,
		RiskBandMedium,
		RiskBandHigh,
		RiskBandCritical,
	}
}

// IsValid checks if the band is valid
func (b RiskBand) IsValid() bool {
	switch b {
	case RiskBandLow,
		RiskBandMedium,
		RiskBandHigh,
		RiskBandCritical:
		return true
	default:
		return false
	}
}

// Rank orders bands: low=1 .. critical=4, invalid=0
func (b RiskBand) Rank() int {
	switch b {
	case RiskBandLow:
		return 1
	case RiskBandMedium:
		return 2
	case RiskBandHigh:
		return 3
	case RiskBandCritical:
		return 4
	default:
		return 0
	}
}

// RequiresNotification is true for bands that trigger a critical risk alert
func (b RiskBand) RequiresNotification() bool {
	return b == RiskBandHigh || b == RiskBandCritical
}

// Label returns the display name used in reports
func (b RiskBand) Label() string {
	switch b {
	case RiskBandLow:
		return "Low"
	case RiskBandMedium:
		return "Medium"
	case RiskBandHigh:
		return "High"
	case RiskBandCritical:
		return "Critical"
	default:
		return string(b)
	}
}

// Color returns the hex color used for the band in the matrix and reports
func (b RiskBand) Color() string {
	switch b {
	case RiskBandLow:
		return "#28A745"
	case RiskBandMedium:
		return "#FFC107"
	case RiskBandHigh:
		return "#FD7E14"
	case RiskBandCritical:
		return "#DC3545"
	default:
		return "#6C757D"
	}
}

func (b RiskBand) String() string {
	return string(b)
}
