package pdf

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// TextStyle is a resolved font selection. Leading is the per-line advance in
// points and is always derived from the size by ResolveStyles.
type TextStyle struct {
	Font    string
	Style   string // "" or "B"
	Size    float64
	Leading float64
}

// Measurer is the single text-metrics source for the whole engine. The height
// estimator and the page renderer both go through it, so a box always renders
// at exactly the height it was estimated at.
type Measurer struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func NewMeasurer(doc *fpdf.Fpdf) *Measurer {
	// Core fonts are cp1252; translate accented input once and measure in
	// translated space so widths match what gets painted.
	return &Measurer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
}

func (m *Measurer) setFont(st TextStyle) {
	m.doc.SetFont(st.Font, st.Style, st.Size)
}

// StringWidth returns the rendered width of s in st. Input is regular UTF-8.
func (m *Measurer) StringWidth(s string, st TextStyle) float64 {
	m.setFont(st)
	return m.doc.GetStringWidth(m.tr(s))
}

// widenRunes turns a translated byte string into valid UTF-8 where every code
// point is the cp1252 value of the corresponding byte. SplitText decodes its
// input as runes and indexes a 256-entry width table, so raw translated bytes
// above 0x7F (invalid UTF-8, decoded as U+FFFD) would blow past it.
func widenRunes(translated string) string {
	runes := make([]rune, len(translated))
	for i := 0; i < len(translated); i++ {
		runes[i] = rune(translated[i])
	}
	return string(runes)
}

// narrowRunes is the inverse: one byte per sub-256 rune.
func narrowRunes(widened string) string {
	var b strings.Builder
	b.Grow(len(widened))
	for _, r := range widened {
		b.WriteByte(byte(r))
	}
	return b.String()
}

// Wrap breaks s into lines no wider than width. The returned lines are in
// translated form, ready to hand to the document verbatim. Empty input still
// occupies one line so empty rows keep their slot in tables and boxes.
func (m *Measurer) Wrap(s string, st TextStyle, width float64) []string {
	if s == "" {
		return []string{""}
	}
	m.setFont(st)
	lines := m.doc.SplitText(widenRunes(m.tr(s)), width)
	if len(lines) == 0 {
		return []string{""}
	}
	for i, line := range lines {
		lines[i] = narrowRunes(line)
	}
	return lines
}

// TextHeight is the wrapped height of s at the given width.
func (m *Measurer) TextHeight(s string, st TextStyle, width float64) float64 {
	return float64(len(m.Wrap(s, st, width))) * st.Leading
}
