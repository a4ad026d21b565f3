package internal

// FieldSpec describes one semantic target column and its matching rules.
// Priority terms mark a near-certain match, Keywords a plausible one and
// Avoid terms veto known false positives. Loaded from groups.json, read-only
// during a run.
type FieldSpec struct {
	Name     string
	Keywords []string
	Priority []string
	Avoid    []string
}

// SourceField is the provenance column naming the file a record came from.
// It is never matched against field specs.
const SourceField = "__source_file"

// Well-known field names the enrichment passes operate on. They only take
// effect when the configuration declares fields with these names.
const (
	FieldBase      = "Base"
	FieldHeight    = "Height"
	FieldSize      = "Size"
	FieldStart     = "Start"
	FieldEnd       = "End"
	FieldGPS       = "GPS"
	FieldLatitude  = "Latitude"
	FieldLongitude = "Longitude"
	FieldFormat    = "Format"
	FieldMonths    = "No. of months"
	FieldSupplier  = "Supplier"
)

// Record is one standardized row: one value per configured field name plus
// the provenance field.
type Record map[string]string

// Table is an ordered set of standardized records. Columns fixes the output
// order: configuration order first, then provenance and derived fields.
type Table struct {
	Columns []string
	Rows    []Record
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Candidate is one scored source column considered for a target field.
type Candidate struct {
	Column string
	Score  int
}

// Match is the outcome of matching a target field against a file's columns.
// Matched is false when no candidate survived the score filter.
type Match struct {
	Matched    bool
	Column     string
	Score      int
	Candidates []Candidate
}

// FileReport describes the outcome of one input file within a run.
type FileReport struct {
	FileName      string
	Status        string // processed | skipped
	Rows          int
	MatchedFields int
}

// RunRow is one persisted processing run.
type RunRow struct {
	ID         int
	StartedAt  string
	Files      int
	Skipped    int
	Rows       int
	OutputPath string
}
