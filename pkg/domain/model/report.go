package model

import (
	"slices"
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/model/config"
)

// Table is one titled grid of a report
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// AddRow appends a row
func (t *Table) AddRow(values ...any) {
	t.Rows = append(t.Rows, values)
}

// Report is renderer input: a header plus a list of tables
type Report struct {
	Title       string
	Company     config.Company
	PeriodStart time.Time
	PeriodEnd   time.Time
	GeneratedAt time.Time
	Tables      []*Table
}

// PeriodLastDay is the last instant covered by the exclusive PeriodEnd
func (r *Report) PeriodLastDay() time.Time {
	return r.PeriodEnd.Add(-time.Nanosecond)
}

// AddTable appends a new table and returns it for filling
func (r *Report) AddTable(name string, headers ...string) *Table {
	t := &Table{Name: name, Headers: headers}
	r.Tables = append(r.Tables, t)
	return t
}

// MonthCount is a number of records in one calendar month, formatted YYYY-MM
type MonthCount struct {
	Month string
	Count int
}

// ExecutiveSummary is the headline numbers of the dashboard
type ExecutiveSummary struct {
	TotalRisks           int
	CriticalRisks        int // high and critical bands
	Incidents            int
	Accidents            int
	CompletedTrainings   int
	CompletedInspections int
	OpenActions          int
	IncidentsByMonth     []MonthCount
	Indices              *SafetyIndices
}

// RiskDashboard counts risks by band, type and status
type RiskDashboard struct {
	Total    int
	ByBand   map[string]int
	ByType   map[string]int
	ByStatus map[string]int
}

// IncidentStatistics counts incidents by type, area and month
type IncidentStatistics struct {
	Total   int
	ByType  map[string]int
	ByArea  map[string]int
	ByMonth []MonthCount
}

// CountByMonth groups timestamps by YYYY-MM in ascending order
func CountByMonth(times []time.Time) []MonthCount {
	counts := map[string]int{}
	var months []string
	for _, t := range times {
		key := t.UTC().Format("2006-01")
		if _, ok := counts[key]; !ok {
			months = append(months, key)
		}
		counts[key]++
	}
	slices.Sort(months)

	out := make([]MonthCount, len(months))
	for i, m := range months {
		out[i] = MonthCount{Month: m, Count: counts[m]}
	}
	return out
}
