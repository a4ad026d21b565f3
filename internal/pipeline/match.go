package pipeline

import (
	"sort"
	"strings"

	"mediaplan/internal"
	"mediaplan/internal/util"
)

// Score ladder for matching a source column name against field rules.
// Priority terms outrank keywords; each avoid hit subtracts, uncapped.
const (
	scorePriorityExact     = 100
	scorePriorityWholeWord = 90
	scorePrioritySubstring = 80
	scoreKeywordExact      = 70
	scoreKeywordWholeWord  = 60
	scoreKeywordSubstring  = 40
	scoreAvoidPenalty      = 50
)

// ScoreColumn rates how well a source column name fits a field's rules.
// The running score is the maximum over all priority and keyword hits;
// every avoid hit then subtracts, so negative totals are possible.
func ScoreColumn(column string, spec internal.FieldSpec) int {
	txt := util.Normalize(column)
	score := 0

	for _, p := range spec.Priority {
		pn := util.Normalize(p)
		if pn == "" {
			continue
		}
		switch {
		case txt == pn:
			score = max(score, scorePriorityExact)
		case util.ContainsWholeWord(txt, pn):
			score = max(score, scorePriorityWholeWord)
		case strings.Contains(txt, pn):
			score = max(score, scorePrioritySubstring)
		}
	}

	for _, k := range spec.Keywords {
		kn := util.Normalize(k)
		if kn == "" {
			continue
		}
		switch {
		case txt == kn:
			score = max(score, scoreKeywordExact)
		case util.ContainsWholeWord(txt, kn):
			score = max(score, scoreKeywordWholeWord)
		case strings.Contains(txt, kn):
			score = max(score, scoreKeywordSubstring)
		}
	}

	for _, a := range spec.Avoid {
		an := util.Normalize(a)
		if an == "" {
			continue
		}
		if util.ContainsWholeWord(txt, an) || strings.Contains(txt, an) {
			score -= scoreAvoidPenalty
		}
	}

	return score
}

// FindBestMatch scores every candidate column against the spec, drops
// non-positive scores and ranks the rest by descending score, breaking ties
// by shorter display name. The ranked list is kept for diagnostics.
func FindBestMatch(columns []string, spec internal.FieldSpec) internal.Match {
	ranked := make([]internal.Candidate, 0, len(columns))
	for _, col := range columns {
		if s := ScoreColumn(col, spec); s > 0 {
			ranked = append(ranked, internal.Candidate{Column: col, Score: s})
		}
	}
	if len(ranked) == 0 {
		return internal.Match{}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return len(ranked[i].Column) < len(ranked[j].Column)
	})

	return internal.Match{
		Matched:    true,
		Column:     ranked[0].Column,
		Score:      ranked[0].Score,
		Candidates: ranked,
	}
}
