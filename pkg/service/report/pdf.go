package report

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
)

const (
	pageMargin  = 10.0
	rowHeight   = 6.0
	cellPadding = 1.0
)

func renderPDF(r *model.Report) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	// core fonts are cp1252; translate accented Spanish text
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, tr(r.GeneratedAt.Format("2006-01-02 15:04")), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, pageLabel(pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(r.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, rowHeight, tr(companyLine(r)), "", 1, "L", false, 0, "")
	if r.Company.Address != "" {
		pdf.CellFormat(0, rowHeight, tr(r.Company.Address), "", 1, "L", false, 0, "")
	}
	if line := periodLine(r); line != "" {
		pdf.CellFormat(0, rowHeight, tr(line), "", 1, "L", false, 0, "")
	}

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin

	for _, t := range r.Tables {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(t.Name), "", 1, "L", false, 0, "")

		cols := len(t.Headers)
		for _, row := range t.Rows {
			cols = max(cols, len(row))
		}
		if cols == 0 {
			continue
		}
		width := usable / float64(cols)

		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i := 0; i < cols; i++ {
			h := ""
			if i < len(t.Headers) {
				h = t.Headers[i]
			}
			pdf.CellFormat(width, rowHeight, fit(pdf, tr(h), width), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 8)
		for _, row := range t.Rows {
			for i := 0; i < cols; i++ {
				v := ""
				if i < len(row) {
					v = formatValue(row[i])
				}
				pdf.CellFormat(width, rowHeight, fit(pdf, tr(v), width), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, goerr.Wrap(err, "failed to write pdf")
	}
	return buf.Bytes(), nil
}

// fit shortens s until it fits in a cell of the given width
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2*cellPadding
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func pageLabel(n int) string {
	return "Page " + strconv.Itoa(n)
}
