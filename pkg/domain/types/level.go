package types

// MinLevel and MaxLevel bound both probability and severity
const (
	MinLevel = 1
	MaxLevel = 5
)

// Probability is the likelihood rating of a hazard, 1 (rare) to 5 (almost certain)
type Probability int

// IsValid reports whether p is within 1..5
func (p Probability) IsValid() bool {
	return p >= MinLevel && p <= MaxLevel
}

// Int returns p as int
func (p Probability) Int() int {
	return int(p)
}

// Severity is the consequence rating of a hazard, 1 (negligible) to 5 (catastrophic)
type Severity int

// IsValid reports whether s is within 1..5
func (s Severity) IsValid() bool {
	return s >= MinLevel && s <= MaxLevel
}

// Int returns s as int
func (s Severity) Int() int {
	return int(s)
}
