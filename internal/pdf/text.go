package pdf

import (
	"math"
	"strings"
)

const ellipsis = "…"

// CellText is text prepared to fit a bounded cell, possibly at a smaller
// size than requested and possibly truncated.
type CellText struct {
	Text      string
	Style     TextStyle
	Align     string // "L" or "C"
	Truncated bool
}

// fitOrTruncate shrinks st in 0.5pt steps down to minSize until text wraps
// within maxH at the given width. If even the minimum size overflows, the
// text is cut at a rune boundary and suffixed with an ellipsis. Never fails:
// worst case is a single clipped line.
func fitOrTruncate(m *Measurer, text string, st TextStyle, width, maxH, minSize float64) CellText {
	for size := st.Size; size >= minSize-1e-9; size -= 0.5 {
		trial := st
		trial.Size = size
		trial.Leading = leadingFor(size, 7.0, 1.06)
		if m.TextHeight(text, trial, width) <= maxH+1e-9 {
			return CellText{Text: text, Style: trial}
		}
	}

	final := st
	final.Size = minSize
	final.Leading = leadingFor(minSize, 7.0, 1.06)

	if maxH < final.Leading {
		// Not even one line fits vertically; clip to one line by width.
		return CellText{Text: truncateToWidth(m, text, final, width), Style: final, Truncated: true}
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		cand := strings.TrimRight(string(runes[:mid]), " ") + ellipsis
		if m.TextHeight(cand, final, width) <= maxH+1e-9 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return CellText{
		Text:      strings.TrimRight(string(runes[:lo]), " ") + ellipsis,
		Style:     final,
		Truncated: true,
	}
}

// truncateToWidth cuts s so that it fits a single line of the given width,
// appending an ellipsis when anything was removed.
func truncateToWidth(m *Measurer, s string, st TextStyle, width float64) string {
	if m.StringWidth(s, st) <= width {
		return s
	}
	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.StringWidth(string(runes[:mid])+ellipsis, st) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo]) + ellipsis
}

// splitTextIntoRows cuts a long paragraph into consecutive chunks, each of
// which wraps within maxRowH at the given width. Cut points are found by
// binary search over the rune count and then pulled back to the nearest word
// boundary when that boundary is not too far in (at least 40% of the chunk
// survives). The iteration is bounded so malformed input can never spin.
func splitTextIntoRows(m *Measurer, text string, st TextStyle, width, maxRowH float64) []string {
	if m.TextHeight(text, st, width) <= maxRowH+1e-9 {
		return []string{text}
	}

	var rows []string
	rest := []rune(text)
	for guard := 0; len(rest) > 0 && guard < 500; guard++ {
		if m.TextHeight(string(rest), st, width) <= maxRowH+1e-9 {
			rows = append(rows, string(rest))
			break
		}
		lo, hi := 1, len(rest)
		for lo < hi {
			mid := (lo + hi + 1) / 2
			if m.TextHeight(string(rest[:mid]), st, width) <= maxRowH+1e-9 {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		cut := lo
		if ws := lastSpaceBefore(rest, cut); ws >= int(math.Ceil(float64(cut)*0.4)) {
			cut = ws
		}
		rows = append(rows, strings.TrimRight(string(rest[:cut]), " "))
		rest = trimLeadingSpace(rest[cut:])
	}
	return rows
}

func lastSpaceBefore(runes []rune, limit int) int {
	for i := limit - 1; i > 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

func trimLeadingSpace(runes []rune) []rune {
	i := 0
	for i < len(runes) && runes[i] == ' ' {
		i++
	}
	return runes[i:]
}
