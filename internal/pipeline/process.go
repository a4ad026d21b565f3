package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"mediaplan/internal"
)

// Processor runs the standardization batch: per-file extraction, merge and
// the enrichment passes over the combined table. Configuration is passed in
// explicitly; nothing persists across files except the accumulating table.
type Processor struct {
	specs          []internal.FieldSpec
	headerMinCells int
}

func NewProcessor(specs []internal.FieldSpec, headerMinCells int) *Processor {
	return &Processor{specs: specs, headerMinCells: headerMinCells}
}

// Process standardizes each input in order and merges the results.
// A file that cannot be parsed contributes nothing and never aborts the
// batch; its report carries the skipped status.
func (p *Processor) Process(inputs []InputFile) (internal.Table, []internal.FileReport) {
	merged := internal.Table{Columns: columnOrder(p.specs)}
	reports := make([]internal.FileReport, 0, len(inputs))

	for _, in := range inputs {
		extracted, report := ExtractFile(in, p.specs, p.headerMinCells)
		reports = append(reports, report)
		if extracted.Empty() {
			continue
		}
		merged.Rows = append(merged.Rows, extracted.Rows...)
	}

	if merged.Empty() {
		return merged, reports
	}

	pruneEmptyRows(&merged)
	p.rewriteDimensions(&merged)
	p.deriveGPS(&merged)
	p.rewriteDates(&merged)
	p.deriveMonths(&merged)
	deriveSupplier(&merged)
	dropColumns(&merged, internal.FieldLatitude, internal.FieldLongitude)
	p.deriveFormatAndArea(&merged)

	return merged, reports
}

// pruneEmptyRows blanks whitespace-only cells and drops records with no
// content outside the provenance field.
func pruneEmptyRows(t *internal.Table) {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		hasContent := false
		for col, v := range row {
			trimmed := strings.TrimSpace(v)
			row[col] = trimmed
			if col != internal.SourceField && trimmed != "" {
				hasContent = true
			}
		}
		if hasContent {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}

func (p *Processor) rewriteDimensions(t *internal.Table) {
	if !t.HasColumn(internal.FieldBase) && !t.HasColumn(internal.FieldHeight) && !t.HasColumn(internal.FieldSize) {
		return
	}
	for _, row := range t.Rows {
		dims := DeriveSizeBaseHeight(row[internal.FieldBase], row[internal.FieldHeight], row[internal.FieldSize])
		row[internal.FieldBase] = dims.Base
		row[internal.FieldHeight] = dims.Height
		row[internal.FieldSize] = dims.Size
	}
}

// deriveGPS fills the GPS column from latitude/longitude when no direct
// value is present.
func (p *Processor) deriveGPS(t *internal.Table) {
	if !t.HasColumn(internal.FieldLatitude) && !t.HasColumn(internal.FieldLongitude) && !t.HasColumn(internal.FieldGPS) {
		return
	}
	ensureColumn(t, internal.FieldGPS)
	for _, row := range t.Rows {
		if strings.TrimSpace(row[internal.FieldGPS]) != "" {
			continue
		}
		lat := strings.TrimSpace(row[internal.FieldLatitude])
		long := strings.TrimSpace(row[internal.FieldLongitude])
		if lat != "" && long != "" {
			row[internal.FieldGPS] = fmt.Sprintf("%s, %s", lat, long)
		}
	}
}

func (p *Processor) rewriteDates(t *internal.Table) {
	if !t.HasColumn(internal.FieldStart) || !t.HasColumn(internal.FieldEnd) {
		return
	}
	for _, row := range t.Rows {
		row[internal.FieldStart] = SafeParseDate(row[internal.FieldStart])
		row[internal.FieldEnd] = SafeParseDate(row[internal.FieldEnd])
		row[internal.FieldStart], row[internal.FieldEnd] = RecoverLiteralRange(row[internal.FieldStart], row[internal.FieldEnd])
	}
}

func (p *Processor) deriveMonths(t *internal.Table) {
	if !t.HasColumn(internal.FieldStart) || !t.HasColumn(internal.FieldEnd) {
		return
	}
	ensureColumn(t, internal.FieldMonths)
	for _, row := range t.Rows {
		if months, ok := MonthsBetween(row[internal.FieldStart], row[internal.FieldEnd]); ok {
			row[internal.FieldMonths] = strconv.FormatFloat(months, 'f', -1, 64)
		} else {
			row[internal.FieldMonths] = ""
		}
	}
}

// deriveSupplier turns the provenance file name into a supplier label by
// stripping the spreadsheet extension and trailing separator characters.
func deriveSupplier(t *internal.Table) {
	ensureColumn(t, internal.FieldSupplier)
	for _, row := range t.Rows {
		row[internal.FieldSupplier] = SupplierFromFileName(row[internal.SourceField])
	}
}

// SupplierFromFileName derives a display supplier name from a source file
// name, e.g. "Supplier X - oferta.xlsx" keeps its stem with trailing
// separators trimmed.
func SupplierFromFileName(fileName string) string {
	name := strings.TrimSpace(fileName)
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".xlsx", ".xls", ".csv", ".htm", ".html":
		name = name[:len(name)-len(ext)]
	}
	return strings.TrimRight(name, " -_.")
}

// deriveFormatAndArea copies the human-readable size into Format, then
// overwrites Size with the numeric area.
func (p *Processor) deriveFormatAndArea(t *internal.Table) {
	if !t.HasColumn(internal.FieldSize) {
		return
	}
	ensureColumn(t, internal.FieldFormat)
	for _, row := range t.Rows {
		row[internal.FieldFormat] = row[internal.FieldSize]
		if area, ok := ComputeArea(row[internal.FieldSize]); ok {
			row[internal.FieldSize] = strconv.FormatFloat(area, 'f', -1, 64)
		} else {
			row[internal.FieldSize] = ""
		}
	}
}

func ensureColumn(t *internal.Table, name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for _, row := range t.Rows {
		if _, ok := row[name]; !ok {
			row[name] = ""
		}
	}
}

func dropColumns(t *internal.Table, names ...string) {
	drop := map[string]struct{}{}
	for _, n := range names {
		drop[n] = struct{}{}
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if _, gone := drop[c]; !gone {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, row := range t.Rows {
		for n := range drop {
			delete(row, n)
		}
	}
}
