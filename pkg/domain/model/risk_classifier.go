package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// RiskAssessment is the classified result of a probability/severity pair
type RiskAssessment struct {
	Probability types.Probability
	Severity    types.Severity
	Score       int
	Band        types.RiskBand
}

// BandForScore maps a score in 1..25 to its band. Scores outside that range
// return an empty band.
func BandForScore(score int) types.RiskBand {
	switch {
	case score >= 1 && score <= 4:
		return types.RiskBandLow
	case score >= 5 && score <= 12:
		return types.RiskBandMedium
	case score >= 13 && score <= 16:
		return types.RiskBandHigh
	case score >= 17 && score <= 25:
		return types.RiskBandCritical
	default:
		return ""
	}
}

// Classify scores a hazard as probability x severity and assigns its band.
func Classify(probability, severity int) (*RiskAssessment, error) {
	p, s := types.Probability(probability), types.Severity(severity)
	if !p.IsValid() || !s.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "probability and severity must be within 1..5",
			goerr.V(ProbabilityKey, probability),
			goerr.V(SeverityKey, severity))
	}

	score := probability * severity
	return &RiskAssessment{
		Probability: p,
		Severity:    s,
		Score:       score,
		Band:        BandForScore(score),
	}, nil
}

// MatrixCell is one cell of the reference risk matrix
type MatrixCell struct {
	Probability types.Probability
	Severity    types.Severity
	Score       int
	Band        types.RiskBand
}

// RiskMatrix returns the 5x5 reference matrix. Rows run severity 5 down to 1,
// columns run probability 1 up to 5.
func RiskMatrix() [][]MatrixCell {
	matrix := make([][]MatrixCell, 0, types.MaxLevel)
	for s := types.MaxLevel; s >= types.MinLevel; s-- {
		row := make([]MatrixCell, 0, types.MaxLevel)
		for p := types.MinLevel; p <= types.MaxLevel; p++ {
			// every pair in range classifies
			a, _ := Classify(p, s)
			row = append(row, MatrixCell{
				Probability: a.Probability,
				Severity:    a.Severity,
				Score:       a.Score,
				Band:        a.Band,
			})
		}
		matrix = append(matrix, row)
	}
	return matrix
}
