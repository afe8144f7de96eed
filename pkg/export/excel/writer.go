package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mcp-analytics/resort-dmr/pkg/models/domain"
)

const sheetName = "Report"

// Writer renders a finished report matrix to an .xlsx workbook: one header
// row with the nine range columns, then the rows exactly as the matrix
// builder ordered them.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

type styles struct {
	header    int
	rowHeader int
	section   int
	byFormat  map[domain.FormatHint]int
}

// Write saves the report to path and returns the path back for logging.
func (w *Writer) Write(report *domain.Report, path string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	st, err := buildStyles(f)
	if err != nil {
		return "", err
	}

	title := fmt.Sprintf("%s Resort\nDaily Management Report\nAs of %s - %s",
		report.Resort,
		report.ReportDate.Format("Monday"),
		report.ReportDate.Format("2 January, 2006"))
	if err := setCell(f, 1, 1, title, st.header); err != nil {
		return "", err
	}

	for i, r := range report.Ranges {
		header := fmt.Sprintf("%s\n%s - %s", r.Name, r.Start.Format("Jan 02"), r.End.Format("Jan 02"))
		if err := setCell(f, i+2, 1, header, st.header); err != nil {
			return "", err
		}
		col, _ := excelize.ColumnNumberToName(i + 2)
		if err := f.SetColWidth(sheetName, col, col, 18); err != nil {
			return "", fmt.Errorf("set column width: %w", err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 30); err != nil {
		return "", fmt.Errorf("set column width: %w", err)
	}

	rowNum := 2
	for _, row := range report.Rows {
		switch row.Kind {
		case domain.RowTitle, domain.RowEmpty:
			// The workbook title lives in the header cell; spacer rows only
			// advance the cursor.
		case domain.RowSection:
			if err := setCell(f, 1, rowNum, row.Label, st.section); err != nil {
				return "", err
			}
		default:
			if err := setCell(f, 1, rowNum, row.Label, st.rowHeader); err != nil {
				return "", err
			}
			valueStyle := st.byFormat[row.Format]
			for i, v := range row.Values {
				if err := setCell(f, i+2, rowNum, v, valueStyle); err != nil {
					return "", err
				}
			}
		}
		rowNum++
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return "", fmt.Errorf("freeze panes: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func setCell(f *excelize.File, col, row int, value any, styleID int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell coordinates (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
		return fmt.Errorf("style cell %s: %w", cell, err)
	}
	return nil
}

func buildStyles(f *excelize.File) (styles, error) {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Border:    borders,
	})
	if err != nil {
		return styles{}, fmt.Errorf("header style: %w", err)
	}

	rowHeader, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: borders,
	})
	if err != nil {
		return styles{}, fmt.Errorf("row header style: %w", err)
	}

	section, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
		Border: borders,
	})
	if err != nil {
		return styles{}, fmt.Errorf("section style: %w", err)
	}

	numFmts := map[domain.FormatHint]string{
		domain.FormatDecimal1DP:        "0.0",
		domain.FormatDecimal2DPGrouped: "#,##0.00",
		domain.FormatPercent0DP:        `0"%"`,
	}
	byFormat := make(map[domain.FormatHint]int, len(numFmts))
	for hint, numFmt := range numFmts {
		numFmt := numFmt
		id, err := f.NewStyle(&excelize.Style{
			Border:       borders,
			CustomNumFmt: &numFmt,
		})
		if err != nil {
			return styles{}, fmt.Errorf("number format style %q: %w", numFmt, err)
		}
		byFormat[hint] = id
	}

	return styles{
		header:    header,
		rowHeader: rowHeader,
		section:   section,
		byFormat:  byFormat,
	}, nil
}
