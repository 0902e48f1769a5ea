package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/safe"
)

func summaryHandler(uc *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := uc.ExecutiveSummary(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toSummary(summary))
	}
}

// legalReportHandler renders the legal report of ?from=&to= (to is
// exclusive) as xlsx or pdf. format=json returns only the indices.
func legalReportHandler(uc *usecase.ReportUseCase) http.HandlerFunc {
	type indicesOnly struct {
		PeriodStart string           `json:"period_start"`
		PeriodEnd   string           `json:"period_end"`
		Indices     *indicesResponse `json:"indices"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		period, err := reportPeriod(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		laborHours, err := queryFloat(r, "labor_hours")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		if r.URL.Query().Get("format") == "json" {
			report, indices, err := uc.BuildLegalReport(r.Context(), period, laborHours)
			if err != nil {
				writeError(r.Context(), w, err)
				return
			}
			writeJSON(r.Context(), w, http.StatusOK, indicesOnly{
				PeriodStart: report.PeriodStart.Format(dateLayout),
				PeriodEnd:   report.PeriodEnd.Format(dateLayout),
				Indices:     toIndices(indices),
			})
			return
		}

		format, err := reportFormat(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		result, err := uc.LegalReport(r.Context(), usecase.LegalReportInput{
			Period:     period,
			LaborHours: laborHours,
			Format:     format,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeFile(w, r, usecase.ReportFilename(result.Report, format), format, result.Data)
	}
}

// exportHandler renders full listings of ?kinds=risk,incident,...
func exportHandler(uc *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := reportFormat(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		var kinds []types.RecordKind
		for _, raw := range strings.Split(r.URL.Query().Get("kinds"), ",") {
			if raw = strings.TrimSpace(raw); raw == "" {
				continue
			}
			kind, err := parseEnum("kinds", raw, types.RecordKind.IsValid)
			if err != nil {
				writeError(r.Context(), w, err)
				return
			}
			kinds = append(kinds, kind)
		}

		data, err := uc.ExportRecords(r.Context(), kinds, format)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeFile(w, r, "sst_records_export."+format.String(), format, data)
	}
}

func writeFile(w http.ResponseWriter, r *http.Request, filename string, format types.ReportFormat, data []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, data)
}

func reportFormat(r *http.Request) (types.ReportFormat, error) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return types.ReportFormatXLSX, nil
	}
	return parseWith("format", raw, types.ParseReportFormat)
}

func reportPeriod(r *http.Request) (usecase.ReportPeriod, error) {
	var p usecase.ReportPeriod
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		t, err := parseTime("from", v)
		if err != nil {
			return p, err
		}
		p.Start = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTime("to", v)
		if err != nil {
			return p, err
		}
		p.End = t
	}
	return p, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, goerr.Wrap(model.ErrInvalidInput, "invalid number", goerr.V(model.FieldKey, name), goerr.V(model.ValueKey, raw))
	}
	return v, nil
}
