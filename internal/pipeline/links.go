package pipeline

import (
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"mediaplan/internal/util"
)

// CellPos addresses one cell with zero-based row and column indices, the
// same coordinate system the raw grid uses.
type CellPos struct {
	Row int
	Col int
}

// HyperlinkMap maps a cell position to the link target hidden behind that
// cell's display text.
type HyperlinkMap map[CellPos]string

// linkFieldNames are the target fields whose values are link targets rather
// than display text. Tuned to the supplier-file convention; override via
// SetLinkFieldNames if a deployment uses different field names.
var linkFieldNames = map[string]struct{}{}

func init() {
	SetLinkFieldNames([]string{
		"photo link", "photo", "link foto", "poza", "picture", "schita",
		"link", "foto", "imagine", "sketch", "pagina prezentare",
		"schita productie", "google map", "google maps",
	})
}

// SetLinkFieldNames replaces the set of field names treated as link-bearing.
func SetLinkFieldNames(names []string) {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[util.Normalize(n)] = struct{}{}
	}
	linkFieldNames = m
}

// IsLinkField reports whether the named target field carries hyperlinks.
func IsLinkField(name string) bool {
	_, ok := linkFieldNames[util.Normalize(name)]
	return ok
}

var reHyperlinkFormula = regexp.MustCompile(`(?i)HYPERLINK\(\s*"([^"]+)"`)

// ResolveHyperlinks walks every cell of the sheet and records link targets:
// native link annotations first, then URLs embedded in HYPERLINK formulas.
// Lookup failures on workbook internals count as "no hyperlink".
func ResolveHyperlinks(f *excelize.File, sheet string) HyperlinkMap {
	links := HyperlinkMap{}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return links
	}
	for rowIdx, row := range rows {
		for colIdx := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}
			if has, target, err := f.GetCellHyperLink(sheet, cell); err == nil && has && target != "" {
				links[CellPos{Row: rowIdx, Col: colIdx}] = target
				continue
			}
			formula, err := f.GetCellFormula(sheet, cell)
			if err != nil || formula == "" {
				continue
			}
			if m := reHyperlinkFormula.FindStringSubmatch(formula); m != nil {
				links[CellPos{Row: rowIdx, Col: colIdx}] = m[1]
			}
		}
	}
	return links
}

// ResolveLinkValue reconciles the link target for one data row of a
// link-bearing field. Candidate columns are tried in their given order:
// first a full pass over the hyperlink map, then a fallback pass over
// visible text that looks like a URL. The map pass always wins over text,
// regardless of candidate order.
func ResolveLinkValue(links HyperlinkMap, sheetRow int, candidates []int, cellText func(col int) string) string {
	for _, col := range candidates {
		if url, ok := links[CellPos{Row: sheetRow, Col: col}]; ok && url != "" {
			return url
		}
	}
	for _, col := range candidates {
		if url := urlFromText(cellText(col)); url != "" {
			return url
		}
	}
	return ""
}

func urlFromText(text string) string {
	t := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(t, "http://"), strings.HasPrefix(t, "https://"):
		return t
	case strings.HasPrefix(t, "www."):
		return "http://" + t
	}
	return ""
}
