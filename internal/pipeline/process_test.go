package pipeline

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"mediaplan/internal"
)

func testSpecs() []internal.FieldSpec {
	return []internal.FieldSpec{
		{Name: "City", Keywords: []string{"oras", "city"}},
		{Name: "Address", Keywords: []string{"adresa", "address"}},
		{Name: internal.FieldBase, Keywords: []string{"baza", "base"}},
		{Name: internal.FieldHeight, Keywords: []string{"inaltime", "height"}},
		{Name: internal.FieldSize, Keywords: []string{"dimensiune", "size"}},
		{Name: "Rent/month", Keywords: []string{"chirie", "rent"}},
		{Name: internal.FieldStart, Keywords: []string{"start"}},
		{Name: internal.FieldEnd, Keywords: []string{"stop", "end"}},
		{Name: "Photo", Keywords: []string{"poza", "photo"}},
		{Name: internal.FieldGPS, Keywords: []string{"gps", "coordonate"}},
		{Name: internal.FieldLatitude, Keywords: []string{"latitudine", "latitude"}},
		{Name: internal.FieldLongitude, Keywords: []string{"longitudine", "longitude"}},
	}
}

func supplierOneWorkbook(t *testing.T) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Oferta panouri 2024"},
		{"Nr", "Oras", "Adresa", "Baza (m)", "Inaltime (m)", "Dimensiune", "Chirie/luna", "Data start", "Data stop", "Poza"},
		{1, "Bucuresti", "Str. Unirii 1", "3", "2", "", "500", "15/01/2024", "10/02/2024", "vezi poza"},
		{2, "Cluj", "Calea Turzii 5", "", "", "2,5x3", "450", "Disponibil: 01/05/24 : 30/06/24", "", "www.example.com/p2.jpg"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	if err := f.SetCellHyperLink(sheet, "J3", "https://cdn.example.com/p1.jpg", "External"); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestExtractFile(t *testing.T) {
	in := InputFile{Name: "Supplier One_.xlsx", Reader: supplierOneWorkbook(t)}
	table, report := ExtractFile(in, testSpecs(), 9)

	if report.Status != "processed" || report.Rows != 2 {
		t.Fatalf("report: %+v", report)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d", len(table.Rows))
	}

	first := table.Rows[0]
	if first["City"] != "Bucuresti" || first["Address"] != "Str. Unirii 1" || first["Rent/month"] != "500" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first[internal.SourceField] != "Supplier One_.xlsx" {
		t.Fatalf("provenance = %q", first[internal.SourceField])
	}

	// The recorded hyperlink replaces the visible cell text.
	if first["Photo"] != "https://cdn.example.com/p1.jpg" {
		t.Fatalf("photo link = %q", first["Photo"])
	}
	// No recorded link: the visible URL is picked up and prefixed.
	if table.Rows[1]["Photo"] != "http://www.example.com/p2.jpg" {
		t.Fatalf("photo fallback = %q", table.Rows[1]["Photo"])
	}

	// Fields without a matching column stay present but empty.
	if v, ok := first[internal.FieldLatitude]; !ok || v != "" {
		t.Fatalf("latitude = %q (present=%v)", v, ok)
	}
}

func TestExtractFileNoHeader(t *testing.T) {
	in := InputFile{Name: "bad.xlsx", Reader: mkWorkbook(t, [][]any{
		{"just", "a", "note"},
		{"nothing", "here"},
	})}
	table, report := ExtractFile(in, testSpecs(), 9)
	if !table.Empty() || report.Status != "skipped" {
		t.Fatalf("expected skip, got %+v", report)
	}
}

func TestProcess(t *testing.T) {
	supplierTwo := mkWorkbook(t, [][]any{
		{"Nr", "Oras", "Adresa", "Dimensiune", "Chirie", "Start", "Stop", "Latitudine", "Longitudine", "Poza"},
		{1, "Iasi", "Bd. Stefan 10", "3x2", "400", "15/01/2024", "10/02/2024", "47.15", "27.58", ""},
		{"", "", "", "", "", "", "", "", "", ""},
	})

	proc := NewProcessor(testSpecs(), 9)
	table, reports := proc.Process([]InputFile{
		{Name: "Supplier One_.xlsx", Reader: supplierOneWorkbook(t)},
		{Name: "iasi-net.xlsx", Reader: supplierTwo},
	})

	if len(reports) != 2 {
		t.Fatalf("reports = %d", len(reports))
	}
	// Two rows from the first file, one from the second; the blank row is pruned.
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d: %+v", len(table.Rows), table.Rows)
	}

	first := table.Rows[0]
	if first[internal.FieldBase] != "3m" || first[internal.FieldHeight] != "2m" {
		t.Fatalf("dimensions: %+v", first)
	}
	if first[internal.FieldFormat] != "3m x 2m" || first[internal.FieldSize] != "6" {
		t.Fatalf("format/area: format=%q size=%q", first[internal.FieldFormat], first[internal.FieldSize])
	}
	if first[internal.FieldStart] != "2024-01-15" || first[internal.FieldEnd] != "2024-02-10" {
		t.Fatalf("dates: %+v", first)
	}
	if first[internal.FieldMonths] != "0.89" {
		t.Fatalf("months = %q", first[internal.FieldMonths])
	}
	if first[internal.FieldSupplier] != "Supplier One" {
		t.Fatalf("supplier = %q", first[internal.FieldSupplier])
	}

	second := table.Rows[1]
	if second[internal.FieldStart] != "2024-05-01" || second[internal.FieldEnd] != "2024-06-30" {
		t.Fatalf("recovered range: start=%q end=%q", second[internal.FieldStart], second[internal.FieldEnd])
	}
	if second[internal.FieldMonths] != "2" {
		t.Fatalf("months = %q", second[internal.FieldMonths])
	}
	if second[internal.FieldBase] != "2.5m" || second[internal.FieldHeight] != "3m" {
		t.Fatalf("dimensions from combined size: %+v", second)
	}
	if second[internal.FieldFormat] != "2,5x3" || second[internal.FieldSize] != "7.5" {
		t.Fatalf("format/area: format=%q size=%q", second[internal.FieldFormat], second[internal.FieldSize])
	}

	third := table.Rows[2]
	if third[internal.FieldGPS] != "47.15, 27.58" {
		t.Fatalf("gps = %q", third[internal.FieldGPS])
	}
	if third[internal.FieldSupplier] != "iasi-net" {
		t.Fatalf("supplier = %q", third[internal.FieldSupplier])
	}

	// Latitude and longitude fold into GPS and disappear from the output.
	if table.HasColumn(internal.FieldLatitude) || table.HasColumn(internal.FieldLongitude) {
		t.Fatalf("lat/long still present: %v", table.Columns)
	}
	for _, derived := range []string{internal.FieldMonths, internal.FieldSupplier, internal.FieldFormat} {
		if !table.HasColumn(derived) {
			t.Fatalf("missing derived column %q in %v", derived, table.Columns)
		}
	}
}
