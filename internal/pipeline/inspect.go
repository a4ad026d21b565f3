package pipeline

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"mediaplan/internal"
)

// Inspection is the diagnostic view of one supplier file: where the header
// row was found and how each configured field ranked the source columns.
type Inspection struct {
	HeaderRow int
	Columns   []string
	Fields    []FieldInspection
}

type FieldInspection struct {
	Field string
	Match internal.Match
}

// Inspect reports header detection and field matching for one file without
// extracting data. Used by the CLI to debug supplier layouts.
func Inspect(in InputFile, specs []internal.FieldSpec, headerMinCells int) (Inspection, error) {
	if _, err := in.Reader.Seek(0, io.SeekStart); err != nil {
		return Inspection{}, err
	}
	f, err := excelize.OpenReader(in.Reader)
	if err != nil {
		return Inspection{}, fmt.Errorf("read %s: %w", in.Name, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	grid, err := f.GetRows(sheet)
	if err != nil {
		return Inspection{}, fmt.Errorf("read %s: %w", in.Name, err)
	}

	headerIdx := LocateHeader(grid, headerMinCells)
	if headerIdx < 0 {
		return Inspection{HeaderRow: -1}, nil
	}

	out := Inspection{HeaderRow: headerIdx, Columns: grid[headerIdx]}
	for _, spec := range specs {
		out.Fields = append(out.Fields, FieldInspection{
			Field: spec.Name,
			Match: FindBestMatch(out.Columns, spec),
		})
	}
	return out, nil
}
