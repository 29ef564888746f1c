package pdf

import "github.com/go-pdf/fpdf"

// Block is one flowable unit of page content. Height must be exact: the
// paginator and the fit estimator both rely on it, and Draw must paint inside
// exactly that extent.
type Block interface {
	Height(m *Measurer, width float64) float64
	Draw(d *drawer, x, y, width float64)
}

// splittable blocks can break across page boundaries. firstAvail is the space
// left on the current page, pageAvail the space of a fresh page.
type splittable interface {
	Split(m *Measurer, width, firstAvail, pageAvail float64) []Block
}

// drawer bundles the document with its Measurer so paint code shares the
// exact metrics the estimate used.
type drawer struct {
	doc *fpdf.Fpdf
	m   *Measurer
}

func (d *drawer) rect(x, y, w, h float64, style string, thickness float64) {
	d.doc.SetLineWidth(thickness)
	d.doc.SetDrawColor(0, 0, 0)
	d.doc.Rect(x, y, w, h, style)
}

func (d *drawer) line(x1, y1, x2, y2, thickness float64) {
	d.doc.SetLineWidth(thickness)
	d.doc.SetDrawColor(0, 0, 0)
	d.doc.Line(x1, y1, x2, y2)
}

func (d *drawer) fillGray() {
	d.doc.SetFillColor(grayR, grayG, grayB)
}

// paint places one already-translated line, baseline derived from top edge y.
func (d *drawer) paint(x, y float64, st TextStyle, translated string) {
	d.m.setFont(st)
	d.doc.SetTextColor(0, 0, 0)
	d.doc.Text(x, y+st.Size*0.8, translated)
}

// text paints one line of regular UTF-8 with its top edge at y.
func (d *drawer) text(x, y float64, st TextStyle, s string) {
	d.paint(x, y, st, d.m.tr(s))
}

func (d *drawer) textCentered(cx, y float64, st TextStyle, s string) {
	d.paint(cx-d.m.StringWidth(s, st)/2, y, st, d.m.tr(s))
}

// textWrapped paints wrapped lines starting at top edge y. Wrap already
// translated them, so they go straight to paint.
func (d *drawer) textWrapped(x, y, width float64, st TextStyle, s, align string) {
	d.m.setFont(st)
	for i, line := range d.m.Wrap(s, st, width) {
		ly := y + float64(i)*st.Leading
		if align == "C" {
			d.paint(x+width/2-d.doc.GetStringWidth(line)/2, ly, st, line)
		} else {
			d.paint(x, ly, st, line)
		}
	}
}

// Spacer is fixed vertical whitespace. Dropped when it would lead a page.
type Spacer struct{ H float64 }

func (s Spacer) Height(*Measurer, float64) float64 { return s.H }
func (s Spacer) Draw(*drawer, float64, float64, float64) {}

// Rule is the horizontal cut line drawn where a section was broken.
type Rule struct{ Thickness float64 }

func (r Rule) pad() float64 { return 1.0 }

func (r Rule) Height(*Measurer, float64) float64 { return r.Thickness + 2*r.pad() }

func (r Rule) Draw(d *drawer, x, y, width float64) {
	d.line(x, y+r.pad()+r.Thickness/2, x+width, y+r.pad()+r.Thickness/2, r.Thickness)
}

// TitleBar is a gray band holding a section title.
type TitleBar struct {
	Text  string
	Style TextStyle
	PadLR float64
	PadTB float64
	Align string // "L" or "C"
}

func (t TitleBar) Height(m *Measurer, width float64) float64 {
	return m.TextHeight(t.Text, t.Style, width-2*t.PadLR) + 2*t.PadTB
}

func (t TitleBar) Draw(d *drawer, x, y, width float64) {
	h := t.Height(d.m, width)
	d.fillGray()
	d.rect(x, y, width, h, "FD", lineWidth)
	d.textWrapped(x+t.PadLR, y+t.PadTB, width-2*t.PadLR, t.Style, t.Text, t.Align)
}

// TextBox is a bordered one-column table of body rows. Each row wraps freely
// within its own extent; rows are separated by a thin inner line.
type TextBox struct {
	Rows  []string
	Style TextStyle
	PadLR float64
	PadTB float64
}

func (b TextBox) rowHeight(m *Measurer, row string, width float64) float64 {
	return m.TextHeight(row, b.Style, width-2*b.PadLR) + 2*b.PadTB
}

func (b TextBox) Height(m *Measurer, width float64) float64 {
	var h float64
	for _, row := range b.Rows {
		h += b.rowHeight(m, row, width)
	}
	return h
}

func (b TextBox) Draw(d *drawer, x, y, width float64) {
	h := b.Height(d.m, width)
	d.rect(x, y, width, h, "D", lineWidth)
	ry := y
	for i, row := range b.Rows {
		if i > 0 {
			d.line(x, ry, x+width, ry, lineWidth/2)
		}
		d.textWrapped(x+b.PadLR, ry+b.PadTB, width-2*b.PadLR, b.Style, row, "L")
		ry += b.rowHeight(d.m, row, width)
	}
}

// Group keeps its children together on one page. The paginator breaks before
// a Group that no longer fits, never inside it.
type Group struct{ Blocks []Block }

func (g Group) Height(m *Measurer, width float64) float64 {
	var h float64
	for _, b := range g.Blocks {
		h += b.Height(m, width)
	}
	return h
}

func (g Group) Draw(d *drawer, x, y, width float64) {
	for _, b := range g.Blocks {
		b.Draw(d, x, y, width)
		y += b.Height(d.m, width)
	}
}
