package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

func TestBandForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		band  types.RiskBand
	}{
		{1, types.RiskBandLow},
		{4, types.RiskBandLow},
		{5, types.RiskBandMedium},
		{12, types.RiskBandMedium},
		{13, types.RiskBandHigh},
		{16, types.RiskBandHigh},
		{17, types.RiskBandCritical},
		{25, types.RiskBandCritical},
		{0, ""},
		{26, ""},
	}

	for _, tt := range tests {
		gt.Value(t, model.BandForScore(tt.score)).Equal(tt.band)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		probability int
		severity    int
		score       int
		band        types.RiskBand
	}{
		{"minimum", 1, 1, 1, types.RiskBandLow},
		{"top of low", 1, 4, 4, types.RiskBandLow},
		{"bottom of medium", 1, 5, 5, types.RiskBandMedium},
		{"top of medium", 3, 4, 12, types.RiskBandMedium},
		{"sixteen is high", 4, 4, 16, types.RiskBandHigh},
		{"fifteen is high", 5, 3, 15, types.RiskBandHigh},
		{"twenty is critical", 5, 4, 20, types.RiskBandCritical},
		{"maximum", 5, 5, 25, types.RiskBandCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := model.Classify(tt.probability, tt.severity)
			gt.NoError(t, err).Required()
			gt.Value(t, a.Score).Equal(tt.score)
			gt.Value(t, a.Band).Equal(tt.band)
		})
	}
}

func TestClassify_IsTotalOverRange(t *testing.T) {
	for p := 1; p <= 5; p++ {
		for s := 1; s <= 5; s++ {
			a, err := model.Classify(p, s)
			gt.NoError(t, err).Required()
			gt.Value(t, a.Score).Equal(p * s)
			gt.True(t, a.Band.IsValid())

			again, err := model.Classify(p, s)
			gt.NoError(t, err)
			gt.Value(t, *again).Equal(*a)
		}
	}
}

func TestClassify_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		probability int
		severity    int
	}{
		{"zero probability", 0, 3},
		{"six probability", 6, 3},
		{"negative severity", 3, -1},
		{"six severity", 2, 6},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := model.Classify(tt.probability, tt.severity)
			gt.Error(t, err).Is(model.ErrInvalidInput)
			gt.Value(t, a).Nil()
		})
	}
}

func TestRiskMatrix(t *testing.T) {
	matrix := model.RiskMatrix()
	gt.A(t, matrix).Length(5).Required()

	for i, row := range matrix {
		gt.A(t, row).Length(5).Required()
		for j, cell := range row {
			// rows descend by severity, columns ascend by probability
			gt.Value(t, cell.Severity).Equal(types.Severity(5 - i))
			gt.Value(t, cell.Probability).Equal(types.Probability(j + 1))

			a, err := model.Classify(int(cell.Probability), int(cell.Severity))
			gt.NoError(t, err).Required()
			gt.Value(t, cell.Band).Equal(a.Band)
			gt.Value(t, cell.Score).Equal(a.Score)
		}
	}

	gt.Value(t, matrix[0][4].Band).Equal(types.RiskBandCritical)
	gt.Value(t, matrix[4][0].Band).Equal(types.RiskBandLow)
}
