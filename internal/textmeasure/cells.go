package textmeasure

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CellMeasurer measures text in terminal cells.
type CellMeasurer struct{}

// MeasureTextWidth returns the number of cells text occupies.
func (CellMeasurer) MeasureTextWidth(text string) float64 {
	return float64(CellWidth(text))
}

// CellWidth sums the display width of every grapheme cluster in s.
func CellWidth(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// GraphemeCount returns the number of user-perceived characters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// SliceColumns returns the cells of s in [start, start+width), padding with
// spaces where the range falls outside the text or splits a wide cluster.
// start may be negative, which shifts the text right.
func SliceColumns(s string, start, width int) string {
	if width <= 0 {
		return ""
	}
	end := start + width
	var b strings.Builder
	col := start
	if start < 0 {
		pad := -start
		if pad > width {
			pad = width
		}
		b.WriteString(strings.Repeat(" ", pad))
		col = 0
	}
	pos := 0
	state := -1
	for len(s) > 0 && col < end {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w := graphemeWidth(cluster)
		cellEnd := pos + w
		switch {
		case cellEnd <= col:
			// left of the window
		case pos < col || cellEnd > end:
			// cluster straddles an edge: blank out the visible half
			from := maxInt(pos, col)
			to := minInt(cellEnd, end)
			b.WriteString(strings.Repeat(" ", to-from))
			col = to
		default:
			b.WriteString(cluster)
			col = cellEnd
		}
		pos = cellEnd
	}
	if col < end {
		b.WriteString(strings.Repeat(" ", end-col))
	}
	return b.String()
}

func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
