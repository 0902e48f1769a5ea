package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

type ReportUseCase struct {
	*base
}

// ReportPeriod bounds a report. End is exclusive. Zero values fall back to
// the configured window ending now.
type ReportPeriod struct {
	Start time.Time
	End   time.Time
}

func (uc *ReportUseCase) resolvePeriod(p ReportPeriod) (ReportPeriod, error) {
	if p.End.IsZero() {
		p.End = uc.now()
	}
	if p.Start.IsZero() {
		p.Start = p.End.AddDate(0, 0, -uc.thresholds.ReportWindowDays)
	}
	if !p.Start.Before(p.End) {
		return p, goerr.Wrap(model.ErrInvalidDateRange, "period start must be before its end",
			goerr.V("start", p.Start), goerr.V("end", p.End))
	}
	return p, nil
}

// ExecutiveSummary collects the headline numbers of the dashboard. Safety
// indices use the configured window and labor hours.
func (uc *ReportUseCase) ExecutiveSummary(ctx context.Context) (*model.ExecutiveSummary, error) {
	var (
		risks       []*model.Risk
		incidents   []*model.Incident
		trainings   []*model.Training
		inspections []*model.Inspection
		actions     []*model.CorrectiveAction
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		risks, err = uc.repo.Risk().List(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		incidents, err = uc.repo.Incident().List(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		trainings, err = uc.repo.Training().List(egCtx, interfaces.WithStatus(types.TrainingStatusCompleted))
		return err
	})
	eg.Go(func() (err error) {
		inspections, err = uc.repo.Inspection().List(egCtx, interfaces.WithStatus(types.InspectionStatusCompleted))
		return err
	})
	eg.Go(func() (err error) {
		actions, err = uc.repo.CorrectiveAction().List(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load dashboard records")
	}

	s := &model.ExecutiveSummary{
		TotalRisks:           len(risks),
		Incidents:            len(incidents),
		CompletedTrainings:   len(trainings),
		CompletedInspections: len(inspections),
	}
	for _, r := range risks {
		if needsAlert(r.Band) {
			s.CriticalRisks++
		}
	}
	for _, a := range actions {
		if a.Status.IsOpen() {
			s.OpenActions++
		}
	}

	period, err := uc.resolvePeriod(ReportPeriod{})
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, 0, len(incidents))
	var inWindow []*model.Incident
	for _, x := range incidents {
		times = append(times, x.OccurredAt)
		if x.Type.IsAccident() {
			s.Accidents++
		}
		if !x.OccurredAt.Before(period.Start) && x.OccurredAt.Before(period.End) {
			inWindow = append(inWindow, x)
		}
	}
	s.IncidentsByMonth = model.CountByMonth(times)

	indices, err := model.ComputeSafetyIndices(model.AggregateIncidents(inWindow, uc.thresholds.DefaultLaborHours))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute safety indices")
	}
	s.Indices = indices

	return s, nil
}

// LegalReportInput selects the period and labor hours of a legal report.
// Zero labor hours use the configured default.
type LegalReportInput struct {
	Period     ReportPeriod
	LaborHours float64
	Format     types.ReportFormat
}

// LegalReport is a rendered report plus the data behind it
type LegalReport struct {
	Report  *model.Report
	Indices *model.SafetyIndices
	Data    []byte
}

// BuildLegalReport assembles the statutory safety report of a period
func (uc *ReportUseCase) BuildLegalReport(ctx context.Context, period ReportPeriod, laborHours float64) (*model.Report, *model.SafetyIndices, error) {
	period, err := uc.resolvePeriod(period)
	if err != nil {
		return nil, nil, err
	}
	if laborHours == 0 {
		laborHours = uc.thresholds.DefaultLaborHours
	}

	incidents, err := uc.repo.Incident().List(ctx,
		interfaces.WithSince(period.Start), interfaces.WithUntil(period.End))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list incidents")
	}

	agg := model.AggregateIncidents(incidents, laborHours)
	indices, err := model.ComputeSafetyIndices(agg)
	if err != nil {
		return nil, nil, err
	}

	r := &model.Report{
		Title:       "SST Legal Report",
		Company:     uc.company,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		GeneratedAt: uc.now(),
	}

	info := r.AddTable("General Info", "Field", "Value")
	info.AddRow("Company", uc.company.Name)
	info.AddRow("RUC", uc.company.TaxID)
	info.AddRow("Address", uc.company.Address)
	info.AddRow("Sector", uc.company.Sector)
	info.AddRow("Economic activity", uc.company.EconomicActivity)
	info.AddRow("Period from", period.Start)
	info.AddRow("Period to", r.PeriodLastDay())

	stats := r.AddTable("Statistics", "Indicator", "Value")
	stats.AddRow("Total incidents", len(incidents))
	stats.AddRow("Disabling accidents", agg.DisablingIncidents)
	stats.AddRow("Lost days", agg.LostDays)
	stats.AddRow("Labor hours", laborHours)
	stats.AddRow("Frequency index", round2(indices.Frequency))
	stats.AddRow("Severity index", round2(indices.Severity))
	stats.AddRow("Accident index", round2(indices.Accident))

	byType := r.AddTable("Incidents by Type", "Type", "Count")
	counts := incidentStatistics(incidents).ByType
	for _, t := range types.AllIncidentTypes() {
		if n := counts[string(t)]; n > 0 {
			byType.AddRow(t.Label(), n)
		}
	}

	detail := r.AddTable("Incident Detail",
		"Code", "Date", "Type", "Area", "Affected", "Rest days", "Status", "Reported to authority")
	for _, x := range incidents {
		detail.AddRow(x.Code, x.OccurredAt, x.Type.Label(), x.Area, x.Affected.Name,
			x.MedicalRestDays, string(x.Status), yesNo(x.ReportedToAuthority))
	}

	return r, indices, nil
}

// LegalReport builds and renders the legal report
func (uc *ReportUseCase) LegalReport(ctx context.Context, input LegalReportInput) (*LegalReport, error) {
	report, indices, err := uc.BuildLegalReport(ctx, input.Period, input.LaborHours)
	if err != nil {
		return nil, err
	}

	data, err := uc.render(ctx, report, input.Format)
	if err != nil {
		return nil, err
	}
	return &LegalReport{Report: report, Indices: indices, Data: data}, nil
}

// ExportRecords renders full listings of the given record kinds, one table
// per kind
func (uc *ReportUseCase) ExportRecords(ctx context.Context, kinds []types.RecordKind, format types.ReportFormat) ([]byte, error) {
	if len(kinds) == 0 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "select at least one record kind")
	}

	r := &model.Report{
		Title:       "SST Records Export",
		Company:     uc.company,
		GeneratedAt: uc.now(),
	}
	for _, kind := range kinds {
		if err := uc.exportTable(ctx, r, kind); err != nil {
			return nil, err
		}
	}

	return uc.render(ctx, r, format)
}

func (uc *ReportUseCase) exportTable(ctx context.Context, r *model.Report, kind types.RecordKind) error {
	switch kind {
	case types.RecordKindRisk:
		risks, err := uc.repo.Risk().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list risks")
		}
		t := r.AddTable("Risks", "Code", "Area", "Process", "Type", "Description",
			"Probability", "Severity", "Score", "Band", "Status", "Created")
		for _, x := range risks {
			t.AddRow(x.Code, x.Area, x.Process, string(x.Type), x.Description,
				int(x.Probability), int(x.Severity), x.Score, string(x.Band), string(x.Status), x.CreatedAt)
		}

	case types.RecordKindIncident:
		incidents, err := uc.repo.Incident().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list incidents")
		}
		t := r.AddTable("Incidents", "Code", "Date", "Type", "Area", "Location",
			"Affected", "Rest days", "Status", "Description")
		for _, x := range incidents {
			t.AddRow(x.Code, x.OccurredAt, x.Type.Label(), x.Area, x.Location,
				x.Affected.Name, x.MedicalRestDays, string(x.Status), x.Description)
		}

	case types.RecordKindTraining:
		trainings, err := uc.repo.Training().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list trainings")
		}
		t := r.AddTable("Trainings", "Code", "Title", "Type", "Modality", "Instructor",
			"Scheduled", "Hours", "Status")
		for _, x := range trainings {
			t.AddRow(x.Code, x.Title, string(x.Type), string(x.Modality), x.Instructor,
				x.ScheduledAt, x.DurationHours, string(x.Status))
		}

	case types.RecordKindInspection:
		inspections, err := uc.repo.Inspection().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list inspections")
		}
		t := r.AddTable("Inspections", "Code", "Area", "Scheduled", "Inspector", "Status", "Observations")
		for _, x := range inspections {
			t.AddRow(x.Code, x.Area, x.ScheduledDate, x.InspectorUserID, string(x.Status), x.Observations)
		}

	case types.RecordKindEPP:
		items, err := uc.repo.EPP().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list EPP items")
		}
		t := r.AddTable("EPP", "Code", "Name", "Type", "Brand", "Stock", "Min stock", "Unit cost", "Low stock")
		for _, x := range items {
			t.AddRow(x.Code, x.Name, string(x.Type), x.Brand, x.Stock, x.MinStock, x.UnitCost, yesNo(x.LowStock()))
		}

	case types.RecordKindDocument:
		docs, err := uc.repo.Document().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list documents")
		}
		t := r.AddTable("Documents", "Code", "Title", "Type", "Version", "Issued", "Review", "Status")
		for _, x := range docs {
			var review any = ""
			if x.ReviewDate != nil {
				review = *x.ReviewDate
			}
			t.AddRow(x.Code, x.Title, string(x.Type), x.Version, x.IssuedAt, review, string(x.Status))
		}

	default:
		return goerr.Wrap(model.ErrInvalidInput, "record kind cannot be exported", goerr.V(model.KindKey, kind))
	}
	return nil
}

func (uc *ReportUseCase) render(ctx context.Context, r *model.Report, format types.ReportFormat) ([]byte, error) {
	if uc.renderer == nil {
		return nil, goerr.New("report renderer is not configured")
	}
	if !format.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidInput, "unknown report format", goerr.V(model.ValueKey, format))
	}
	data, err := uc.renderer.Render(ctx, r, format)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render report", goerr.V("format", format))
	}
	return data, nil
}

// ReportFilename names a rendered report after its title and generation time
func ReportFilename(r *model.Report, format types.ReportFormat) string {
	name := strings.ToLower(strings.ReplaceAll(r.Title, " ", "_"))
	return fmt.Sprintf("%s_%s.%s", name, r.GeneratedAt.Format("20060102_150405"), format)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
