package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"mediaplan/internal/pipeline"
)

// Open prepares one supplier file for the standardization pipeline.
// Spreadsheets pass through; csv and html table exports are converted to an
// in-memory workbook so the core only ever sees one input shape.
func Open(path string) (pipeline.InputFile, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return pipeline.InputFile{}, err
	}
	name := filepath.Base(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return pipeline.InputFile{Name: name, Reader: bytes.NewReader(blob)}, nil
	case ".csv":
		r, err := ConvertCSV(bytes.NewReader(blob))
		if err != nil {
			return pipeline.InputFile{}, fmt.Errorf("convert %s: %w", name, err)
		}
		return pipeline.InputFile{Name: name, Reader: r}, nil
	case ".htm", ".html":
		r, err := ConvertHTMLTable(bytes.NewReader(blob))
		if err != nil {
			return pipeline.InputFile{}, fmt.Errorf("convert %s: %w", name, err)
		}
		return pipeline.InputFile{Name: name, Reader: r}, nil
	default:
		return pipeline.InputFile{}, fmt.Errorf("unsupported input type: %s", name)
	}
}

// ConvertCSV rewrites a csv table as a single-sheet workbook stream.
func ConvertCSV(r io.Reader) (io.ReadSeeker, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return gridToWorkbook(rows)
}

// ConvertHTMLTable rewrites the first populated <table> of an html document
// as a single-sheet workbook stream.
func ConvertHTMLTable(r io.Reader) (io.ReadSeeker, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var grid [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) > 0 {
				grid = append(grid, cells)
			}
		})
		return len(grid) == 0
	})

	if len(grid) == 0 {
		return nil, fmt.Errorf("no table rows found")
	}
	return gridToWorkbook(grid)
}

func gridToWorkbook(grid [][]string) (io.ReadSeeker, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for rowIdx, row := range grid {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buf.Bytes()), nil
}
