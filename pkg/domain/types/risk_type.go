package types

// RiskType is the hazard family of a risk
type RiskType string

const (
	RiskTypePhysical     RiskType = "physical"
	RiskTypeChemical     RiskType = "chemical"
	RiskTypeBiological   RiskType = "biological"
	RiskTypeErgonomic    RiskType = "ergonomic"
	RiskTypePsychosocial RiskType = "psychosocial"
	RiskTypeMechanical   RiskType = "mechanical"
	RiskTypeElectrical   RiskType = "electrical"
	RiskTypeLocative     RiskType = "locative"
)

// AllRiskTypes returns all valid risk types
func AllRiskTypes() []RiskType {
	return []RiskType{
		RiskTypePhysical,
		RiskTypeChemical,
		RiskTypeBiological,
		RiskTypeErgonomic,
		RiskTypePsychosocial,
		RiskTypeMechanical,
		RiskTypeElectrical,
		RiskTypeLocative,
	}
}

// IsValid checks if the risk type is valid
func (t RiskType) IsValid() bool {
	for _, v := range AllRiskTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func (t RiskType) String() string {
	return string(t)
}
