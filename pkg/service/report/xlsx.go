package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

// headerRows is the number of rows taken by the report header on each sheet
const headerRows = 4

func renderXLSX(r *model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create header style")
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create title style")
	}

	tables := r.Tables
	if len(tables) == 0 {
		tables = []*model.Table{{Name: "Report"}}
	}

	used := map[string]bool{}
	for i, t := range tables {
		sheet := sheetName(t.Name, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, goerr.Wrap(err, "failed to rename sheet", goerr.V("sheet", sheet))
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, goerr.Wrap(err, "failed to add sheet", goerr.V("sheet", sheet))
		}

		if err := writeSheet(f, sheet, r, t, title, bold); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write workbook")
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, r *model.Report, t *model.Table, titleStyle, boldStyle int) error {
	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return goerr.Wrap(err, "invalid cell", goerr.V("col", col), goerr.V("row", row))
		}
		if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
			return goerr.Wrap(err, "failed to set cell", goerr.V("sheet", sheet), goerr.V("cell", cell))
		}
		return nil
	}

	if err := set(1, 1, r.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return goerr.Wrap(err, "failed to style title")
	}
	if err := set(1, 2, companyLine(r)); err != nil {
		return err
	}
	if err := set(1, 3, periodLine(r)); err != nil {
		return err
	}

	headerRow := headerRows + 1
	for i, h := range t.Headers {
		if err := set(i+1, headerRow, h); err != nil {
			return err
		}
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), headerRow)
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		if err := f.SetCellStyle(sheet, first, last, boldStyle); err != nil {
			return goerr.Wrap(err, "failed to style header")
		}
	}

	for ri, row := range t.Rows {
		for ci, v := range row {
			if err := set(ci+1, headerRow+1+ri, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellValue keeps native numbers and dates so spreadsheets can compute on them
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string, int, int64, float64, bool:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(dateLayout)
	default:
		return formatValue(x)
	}
}

// sheetName makes a valid, unique worksheet name
func sheetName(name string, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Sheet"
	}
	if len([]rune(name)) > maxSheetNameLen {
		name = string([]rune(name)[:maxSheetNameLen])
	}

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetNameLen {
			base = base[:maxSheetNameLen-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
