package config

// Company is the employer profile printed on every report
type Company struct {
	Name             string
	TaxID            string // RUC
	Address          string
	Sector           string
	EconomicActivity string
}

// Thresholds tunes reports and alert scans
type Thresholds struct {
	DefaultLaborHours    float64
	ReportWindowDays     int
	EPPExpiryWindowDays  int
	TrainingReminderDays int
}

// DefaultThresholds returns the values used when the config file leaves them out
func DefaultThresholds() Thresholds {
	return Thresholds{
		DefaultLaborHours:    100000,
		ReportWindowDays:     365,
		EPPExpiryWindowDays:  30,
		TrainingReminderDays: 3,
	}
}
