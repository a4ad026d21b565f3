package pipeline

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"mediaplan/internal"
)

// InputFile is one named, rewindable spreadsheet source.
type InputFile struct {
	Name   string
	Reader io.ReadSeeker
}

// ExtractFile standardizes one spreadsheet: locates the header row, matches
// every configured field to a source column and reconciles hyperlink fields.
// Unreadable files and files without a qualifying header row contribute an
// empty table, not an error.
func ExtractFile(in InputFile, specs []internal.FieldSpec, headerMinCells int) (internal.Table, internal.FileReport) {
	report := internal.FileReport{FileName: in.Name, Status: "skipped"}
	table := internal.Table{Columns: columnOrder(specs)}

	if _, err := in.Reader.Seek(0, io.SeekStart); err != nil {
		return table, report
	}
	f, err := excelize.OpenReader(in.Reader)
	if err != nil {
		return table, report
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return table, report
	}
	grid, err := f.GetRows(sheet)
	if err != nil {
		return table, report
	}

	headerIdx := LocateHeader(grid, headerMinCells)
	if headerIdx < 0 {
		return table, report
	}

	header := grid[headerIdx]
	dataRows := grid[headerIdx+1:]
	links := ResolveHyperlinks(f, sheet)

	colIndex := map[string]int{}
	for i, name := range header {
		if _, dup := colIndex[name]; !dup {
			colIndex[name] = i
		}
	}

	matches := make([]internal.Match, len(specs))
	for i, spec := range specs {
		matches[i] = FindBestMatch(header, spec)
		if matches[i].Matched {
			report.MatchedFields++
		}
	}

	for rowOffset, row := range dataRows {
		record := internal.Record{internal.SourceField: in.Name}
		sheetRow := headerIdx + 1 + rowOffset

		for i, spec := range specs {
			match := matches[i]
			if !match.Matched {
				record[spec.Name] = ""
				continue
			}
			if IsLinkField(spec.Name) {
				record[spec.Name] = ResolveLinkValue(links, sheetRow, candidateIndexes(match, colIndex), func(col int) string {
					return cellAt(row, col)
				})
				continue
			}
			record[spec.Name] = cellAt(row, colIndex[match.Column])
		}
		table.Rows = append(table.Rows, record)
	}

	report.Status = "processed"
	report.Rows = len(table.Rows)
	return table, report
}

func columnOrder(specs []internal.FieldSpec) []string {
	cols := make([]string, 0, len(specs)+1)
	for _, spec := range specs {
		cols = append(cols, spec.Name)
	}
	return append(cols, internal.SourceField)
}

func candidateIndexes(match internal.Match, colIndex map[string]int) []int {
	out := make([]int, 0, len(match.Candidates))
	for _, c := range match.Candidates {
		if idx, ok := colIndex[c.Column]; ok {
			out = append(out, idx)
		}
	}
	return out
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
