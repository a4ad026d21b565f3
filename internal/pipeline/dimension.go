package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reMetreSuffix = regexp.MustCompile(`\s*m$`)
	reSizeSplit   = regexp.MustCompile(`[xX]`)
	reAreaPair    = regexp.MustCompile(`(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)`)
)

// NormalizeDimension canonicalizes a single base/height value: lowercased,
// trimmed, comma decimals converted to dots, trailing metre marker stripped.
// Blank input yields the empty string.
func NormalizeDimension(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, ",", ".")
	return reMetreSuffix.ReplaceAllString(v, "")
}

// Dimensions is the canonical base/height/size triple for one record.
// Empty strings stand for missing values.
type Dimensions struct {
	Base   string
	Height string
	Size   string
}

// DeriveSizeBaseHeight reconciles separately-supplied base and height with a
// combined size string. A size that splits cleanly on "x" wins over the
// separate values; otherwise base and height synthesize the size. Canonical
// base and height always carry the metre suffix.
func DeriveSizeBaseHeight(base, height, size string) Dimensions {
	b := NormalizeDimension(base)
	h := NormalizeDimension(height)
	s := strings.TrimSpace(size)

	if s != "" {
		if parts := reSizeSplit.Split(s, -1); len(parts) == 2 {
			b = NormalizeDimension(parts[0])
			h = NormalizeDimension(parts[1])
		}
	} else if b != "" && h != "" {
		s = fmt.Sprintf("%sm x %sm", b, h)
	}

	out := Dimensions{Size: s}
	if b != "" {
		out.Base = b + "m"
	}
	if h != "" {
		out.Height = h + "m"
	}
	return out
}

// ComputeArea extracts the first <number>x<number> pattern from a size
// string and returns the product rounded to 2 decimals. The second return
// is false when no such pattern parses.
func ComputeArea(size string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(size))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, "m", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.NewReplacer("×", "x", "*", "x").Replace(s)
	s = regexp.MustCompile(`\s+`).ReplaceAllString(s, "")

	m := reAreaPair.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	w, err1 := strconv.ParseFloat(m[1], 64)
	h, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return math.Round(w*h*100) / 100, true
}
