package pipeline

import "strings"

// DefaultHeaderMinCells is the populated-cell threshold for header detection.
// Tuned to the minimum column count of a usable supplier sheet.
const DefaultHeaderMinCells = 9

// LocateHeader scans a raw grid top to bottom and returns the index of the
// first row with at least minCells non-empty cells, or -1 when no row
// qualifies. Files without a qualifying row are treated as unparsable.
func LocateHeader(grid [][]string, minCells int) int {
	if minCells <= 0 {
		minCells = DefaultHeaderMinCells
	}
	for i, row := range grid {
		populated := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				populated++
			}
		}
		if populated >= minCells {
			return i
		}
	}
	return -1
}
