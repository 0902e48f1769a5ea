package usecase_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/model/config"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/xuri/excelize/v2"
)

func seedReportData(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := asUser("sup", types.RoleSupervisor)

	for _, ps := range [][2]int{{1, 2}, {4, 4}, {5, 5}} {
		_, err := env.uc.Risk.CreateRisk(ctx, newRisk(ps[0], ps[1]))
		gt.NoError(t, err).Required()
	}

	incidents := []*model.Incident{
		newIncident(types.IncidentTypeDisablingAccident, testNow.AddDate(0, -2, 0), 10),
		newIncident(types.IncidentTypeMinorAccident, testNow.AddDate(0, -1, 0), 0),
		newIncident(types.IncidentTypeIncident, testNow.AddDate(0, -1, 0), 0),
		// outside the default window
		newIncident(types.IncidentTypeFatalAccident, testNow.AddDate(-2, 0, 0), 6000),
	}
	for _, in := range incidents {
		_, err := env.uc.Incident.RegisterIncident(ctx, in)
		gt.NoError(t, err).Required()
	}

	tr, err := env.uc.Training.ScheduleTraining(ctx, newTraining(testNow.AddDate(0, 0, -3)), nil, nil)
	gt.NoError(t, err).Required()
	_, err = env.uc.Training.ChangeTrainingStatus(ctx, tr.Record.ID, types.TrainingStatusCompleted, nil)
	gt.NoError(t, err).Required()
}

func TestReportUseCase_ExecutiveSummary(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)

	s, err := env.uc.Report.ExecutiveSummary(asUser("sup", types.RoleSupervisor))
	gt.NoError(t, err).Required()

	gt.Value(t, s.TotalRisks).Equal(3)
	gt.Value(t, s.CriticalRisks).Equal(2)
	gt.Value(t, s.Incidents).Equal(4)
	gt.Value(t, s.Accidents).Equal(3)
	gt.Value(t, s.CompletedTrainings).Equal(1)
	gt.Value(t, s.CompletedInspections).Equal(0)
	gt.A(t, s.IncidentsByMonth).Length(3)

	// one disabling accident with 10 lost days over 100000 hours
	gt.Value(t, s.Indices).NotNil().Required()
	gt.Value(t, s.Indices.Frequency).Equal(10.0)
	gt.Value(t, s.Indices.Severity).Equal(100.0)
	gt.Value(t, s.Indices.Accident).Equal(1.0)
}

func TestReportUseCase_LegalReport(t *testing.T) {
	env := newTestEnv(t, usecase.WithCompany(config.Company{
		Name:  "Minera Andina SAC",
		TaxID: "20123456789",
	}))
	seedReportData(t, env)
	ctx := asUser("sup", types.RoleSupervisor)

	t.Run("xlsx has one sheet per table", func(t *testing.T) {
		out, err := env.uc.Report.LegalReport(ctx, usecase.LegalReportInput{
			LaborHours: 200000,
			Format:     types.ReportFormatXLSX,
		})
		gt.NoError(t, err).Required()

		names := []string{}
		for _, tbl := range out.Report.Tables {
			names = append(names, tbl.Name)
		}
		gt.Value(t, names).Equal([]string{"General Info", "Statistics", "Incidents by Type", "Incident Detail"})
		gt.A(t, out.Report.Tables[3].Rows).Length(3)
		gt.Value(t, out.Indices.Frequency).Equal(5.0)

		f, err := excelize.OpenReader(bytes.NewReader(out.Data))
		gt.NoError(t, err).Required()
		defer f.Close()
		gt.A(t, f.GetSheetList()).Length(4)
	})

	t.Run("pdf", func(t *testing.T) {
		out, err := env.uc.Report.LegalReport(ctx, usecase.LegalReportInput{Format: types.ReportFormatPDF})
		gt.NoError(t, err).Required()
		gt.True(t, bytes.HasPrefix(out.Data, []byte("%PDF-")))
	})

	t.Run("period to is the last reported day", func(t *testing.T) {
		periodTo := func(r *model.Report) string {
			for _, row := range r.Tables[0].Rows {
				if row[0] == "Period to" {
					return row[1].(time.Time).Format("2006-01-02")
				}
			}
			return ""
		}

		out, err := env.uc.Report.LegalReport(ctx, usecase.LegalReportInput{
			Period: usecase.ReportPeriod{
				Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			Format: types.ReportFormatXLSX,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, periodTo(out.Report)).Equal("2024-05-31")

		// a default period ends now, which is still inside today
		out, err = env.uc.Report.LegalReport(ctx, usecase.LegalReportInput{Format: types.ReportFormatXLSX})
		gt.NoError(t, err).Required()
		gt.Value(t, periodTo(out.Report)).Equal("2024-06-15")
	})

	t.Run("reversed period", func(t *testing.T) {
		_, err := env.uc.Report.LegalReport(ctx, usecase.LegalReportInput{
			Period: usecase.ReportPeriod{Start: testNow, End: testNow.Add(-time.Hour)},
			Format: types.ReportFormatXLSX,
		})
		gt.Error(t, err).Is(model.ErrInvalidDateRange)
	})

	t.Run("negative labor hours", func(t *testing.T) {
		_, err := env.uc.Report.LegalReport(ctx, usecase.LegalReportInput{
			LaborHours: -1,
			Format:     types.ReportFormatXLSX,
		})
		gt.Error(t, err).Is(model.ErrInvalidInput)
	})
}

func TestReportUseCase_ExportRecords(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)
	ctx := asUser("sup", types.RoleSupervisor)

	data, err := env.uc.Report.ExportRecords(ctx,
		[]types.RecordKind{types.RecordKindRisk, types.RecordKindIncident, types.RecordKindTraining},
		types.ReportFormatXLSX)
	gt.NoError(t, err).Required()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	gt.NoError(t, err).Required()
	defer f.Close()
	gt.Value(t, f.GetSheetList()).Equal([]string{"Risks", "Incidents", "Trainings"})

	_, err = env.uc.Report.ExportRecords(ctx, nil, types.ReportFormatXLSX)
	gt.Error(t, err).Is(model.ErrInvalidInput)

	_, err = env.uc.Report.ExportRecords(ctx, []types.RecordKind{types.RecordKindRegistration}, types.ReportFormatXLSX)
	gt.Error(t, err).Is(model.ErrInvalidInput)
}
