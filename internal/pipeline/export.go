package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"mediaplan/internal"
)

const (
	exportSheet    = "Processed Data"
	exportTitle    = "MP OOH CAMPAIGN"
	dataHeaderRow  = 10
	maxColumnWidth = 40.0
)

// costColumns get the yellow header treatment in the export.
var costColumns = map[string]struct{}{
	FieldRent: {}, FieldTotalRent: {}, FieldProduction: {}, FieldPosting: {},
	FieldAgComm: {}, FieldAgencyFee: {}, FieldAdTaxPct: {}, FieldAdTax: {},
	FieldTotalCost: {},
}

// ExportMetadata is the key-value block written above the data region.
type ExportMetadata struct {
	Brand    string
	Campaign string
	Version  string
	Start    string
	End      string
}

// ExportTable writes the standardized table as a styled workbook: campaign
// title, metadata block, red/yellow header band at row 10, hyperlink cells
// rendered as short clickable labels, zebra-striped body.
func ExportTable(t internal.Table, meta ExportMetadata, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, exportSheet); err != nil {
		return err
	}
	sheet = exportSheet

	st, err := newExportStyles(f)
	if err != nil {
		return err
	}

	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}
	_ = f.SetCellValue(sheet, "A1", exportTitle)
	_ = f.SetCellStyle(sheet, "A1", "B1", st.title)

	metaRows := []struct{ label, value string }{
		{"Brand", meta.Brand},
		{"Campaign", meta.Campaign},
		{"Version", meta.Version},
		{"Start", meta.Start},
		{"End", meta.End},
	}
	for i, m := range metaRows {
		r := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), m.label)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), st.metaLabel)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), m.value)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), st.body)
	}

	linkCols := map[int]bool{}
	for colIdx, name := range t.Columns {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "photo") || strings.Contains(lower, "link") || strings.Contains(lower, "address") {
			linkCols[colIdx] = true
		}

		cell, _ := excelize.CoordinatesToCellName(colIdx+1, dataHeaderRow)
		_ = f.SetCellValue(sheet, cell, name)
		if _, special := costColumns[name]; special {
			_ = f.SetCellStyle(sheet, cell, cell, st.headerSpecial)
		} else {
			_ = f.SetCellStyle(sheet, cell, cell, st.header)
		}
	}

	for rowIdx, row := range t.Rows {
		sheetRow := dataHeaderRow + 1 + rowIdx
		zebra := sheetRow%2 == 0
		for colIdx, name := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, sheetRow)
			value := row[name]

			if linkCols[colIdx] && strings.HasPrefix(value, "http") {
				label := "photo"
				if strings.Contains(strings.ToLower(name), "address") {
					label = "link"
				}
				_ = f.SetCellValue(sheet, cell, label)
				_ = f.SetCellHyperLink(sheet, cell, value, "External")
				_ = f.SetCellStyle(sheet, cell, cell, st.pick(st.link, st.linkZebra, zebra))
				continue
			}

			_ = f.SetCellValue(sheet, cell, value)
			_ = f.SetCellStyle(sheet, cell, cell, st.pick(st.body, st.bodyZebra, zebra))
		}
	}

	for colIdx, name := range t.Columns {
		width := float64(len(name)) + 2
		for _, row := range t.Rows {
			if w := float64(len(row[name])) + 2; w > width {
				width = w
			}
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		colName, _ := excelize.ColumnNumberToName(colIdx + 1)
		_ = f.SetColWidth(sheet, colName, colName, width)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

type exportStyles struct {
	title         int
	metaLabel     int
	header        int
	headerSpecial int
	body          int
	bodyZebra     int
	link          int
	linkZebra     int
}

func (s exportStyles) pick(plain, zebra int, isZebra bool) int {
	if isZebra {
		return zebra
	}
	return plain
}

func newExportStyles(f *excelize.File) (exportStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	wrap := &excelize.Alignment{WrapText: true, Vertical: "top"}

	var st exportStyles
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"305496"}, Pattern: 1},
		Alignment: center,
	})
	if err != nil {
		return st, err
	}
	st.metaLabel, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 9, Bold: true}})
	if err != nil {
		return st, err
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FF0000"}, Pattern: 1},
		Alignment: center,
		Border:    thin,
	})
	if err != nil {
		return st, err
	}
	st.headerSpecial, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Bold: true, Color: "FF0000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
		Alignment: center,
		Border:    thin,
	})
	if err != nil {
		return st, err
	}
	st.body, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9},
		Alignment: wrap,
		Border:    thin,
	})
	if err != nil {
		return st, err
	}
	st.bodyZebra, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Alignment: wrap,
		Border:    thin,
	})
	if err != nil {
		return st, err
	}
	st.link, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Color: "0000FF", Underline: "single"},
		Alignment: center,
		Border:    thin,
	})
	if err != nil {
		return st, err
	}
	st.linkZebra, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Color: "0000FF", Underline: "single"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Alignment: center,
		Border:    thin,
	})
	return st, err
}
