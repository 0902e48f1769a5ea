package report

var (
	FormatValue = formatValue
	SheetName   = sheetName
)
