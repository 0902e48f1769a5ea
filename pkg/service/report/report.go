package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

const dateLayout = "2006-01-02"

// Renderer writes reports as XLSX workbooks or PDF documents
type Renderer struct{}

var _ interfaces.ReportRenderer = &Renderer{}

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(ctx context.Context, report *model.Report, format types.ReportFormat) ([]byte, error) {
	if report == nil {
		return nil, goerr.Wrap(model.ErrInvalidInput, "report is nil")
	}

	switch format {
	case types.ReportFormatXLSX:
		return renderXLSX(report)
	case types.ReportFormatPDF:
		return renderPDF(report)
	default:
		return nil, goerr.Wrap(model.ErrInvalidInput, "unsupported report format", goerr.V(model.ValueKey, format))
	}
}

func periodLine(r *model.Report) string {
	if r.PeriodStart.IsZero() && r.PeriodEnd.IsZero() {
		return ""
	}
	return fmt.Sprintf("Period: %s to %s", r.PeriodStart.Format(dateLayout), r.PeriodLastDay().Format(dateLayout))
}

func companyLine(r *model.Report) string {
	if r.Company.TaxID == "" {
		return r.Company.Name
	}
	return fmt.Sprintf("%s (RUC %s)", r.Company.Name, r.Company.TaxID)
}

// formatValue renders a cell for text outputs
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(dateLayout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return formatValue(*x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', 2, 32)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
