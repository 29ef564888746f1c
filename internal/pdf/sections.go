package pdf

import (
	"fmt"
	"strings"

	"pronav-backend/internal/constants"
	"pronav-backend/internal/storage"
)

// sectionSafetyGap pads every capacity computation so an estimate that lands
// exactly on the boundary never overflows by a hairline during rendering.
const sectionSafetyGap = 4.0

type section struct {
	index int // 1-based, printed in the title
	title string
	body  string
}

func reportSections(rep *storage.ReportRecord) []section {
	values := []string{
		rep.ReportedProblem,
		rep.ServicePerformed,
		rep.Result,
		rep.PendingIssues,
		rep.ClientMaterial,
		rep.CompanyMaterial,
	}
	out := make([]section, 0, len(values))
	for i, title := range constants.SectionTitles {
		out = append(out, section{index: i + 1, title: title, body: values[i]})
	}
	return out
}

// sectionRows turns a body into printable rows: one row per non-empty
// paragraph, with paragraphs too tall for a single row budget chunked into
// consecutive rows. An empty body keeps a single blank row so the section
// still prints its frame.
func sectionRows(m *Measurer, body string, st TextStyle, width, padLR float64) []string {
	var rows []string
	for _, para := range strings.Split(body, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		rows = append(rows, splitTextIntoRows(m, para, st, width-2*padLR, maxSectionRowH)...)
	}
	if len(rows) == 0 {
		rows = []string{""}
	}
	return rows
}

type sectionLayout struct {
	m       *Measurer
	styles  StyleSet
	usableW float64
	// frameHeight <= 0 disables splitting; every section is then emitted as
	// a single title + box pair, which is what the fit estimator wants.
	frameHeight float64
	topOffset   float64
}

func (l *sectionLayout) titleBar(text string) TitleBar {
	return TitleBar{
		Text:  text,
		Style: l.styles.Title,
		PadLR: l.styles.PadSmall,
		PadTB: l.styles.PadSmall,
		Align: "L",
	}
}

// bodyStyle picks the body font for a section: the service-performed
// narrative gets the enlarged value style, every other section stays at the
// standard value size.
func (l *sectionLayout) bodyStyle(title string) TextStyle {
	if strings.HasPrefix(title, constants.ServicePerformedTitle) {
		return l.styles.LargeValue
	}
	return l.styles.Value
}

func (l *sectionLayout) box(rows []string, st TextStyle) TextBox {
	return TextBox{
		Rows:  rows,
		Style: st,
		PadLR: l.styles.PadMed,
		PadTB: l.styles.PadSmall,
	}
}

func (l *sectionLayout) rowHeight(row string, st TextStyle) float64 {
	b := l.box(nil, st)
	return b.rowHeight(l.m, row, l.usableW)
}

// packRows takes rows starting at from whose summed heights stay within
// capacity, always taking at least one so the layout makes progress.
func (l *sectionLayout) packRows(rows []string, from int, st TextStyle, capacity float64) int {
	end := from
	var used float64
	for end < len(rows) {
		h := l.rowHeight(rows[end], st)
		if end > from && used+h > capacity {
			break
		}
		used += h
		end++
	}
	return end
}

// build emits every narrative section. When splitting is enabled it simulates
// the downstream paginator (same page budget, same block heights) so that the
// Groups it produces land exactly where the simulation put them: a section
// whose remaining page space cannot hold its title plus one body row moves
// whole to the next page, and a section that overflows is cut with a rule and
// resumed under a continuation title on the following page. A row duplicated
// across the boundary by re-entrant input is dropped after normalization.
func (l *sectionLayout) build(rep *storage.ReportRecord) []Block {
	var out []Block

	if l.frameHeight <= 0 {
		for _, sec := range reportSections(rep) {
			title := fmt.Sprintf("%d. %s", sec.index, sec.title)
			st := l.bodyStyle(sec.title)
			rows := sectionRows(l.m, sec.body, st, l.usableW, l.styles.PadMed)
			out = append(out, Group{Blocks: []Block{l.titleBar(title), l.box(rows, st)}})
		}
		return out
	}

	rule := Rule{Thickness: lineWidth}
	remaining := l.frameHeight - l.topOffset

	place := func(b Block) {
		h := b.Height(l.m, l.usableW)
		if h > remaining && remaining < l.frameHeight {
			remaining = l.frameHeight
		}
		out = append(out, b)
		remaining -= h
	}

	for _, sec := range reportSections(rep) {
		title := fmt.Sprintf("%d. %s", sec.index, sec.title)
		contTitle := title + constants.ContinuationSuffix
		st := l.bodyStyle(sec.title)
		rows := sectionRows(l.m, sec.body, st, l.usableW, l.styles.PadMed)

		titleH := l.titleBar(title).Height(l.m, l.usableW)
		contTitleH := l.titleBar(contTitle).Height(l.m, l.usableW)
		reserve := rule.Height(l.m, l.usableW) + contTitleH + sectionSafetyGap

		i := 0
		first := true
		var prevLast string
		for i < len(rows) {
			var capacity float64
			var head TitleBar
			if first {
				head = l.titleBar(title)
				capacity = remaining - titleH - sectionSafetyGap
				if capacity < l.rowHeight(rows[i], st) {
					// Will not fit here; the Group forces the paginator onto
					// a fresh page, so pack against a full page instead.
					capacity = l.frameHeight - titleH - sectionSafetyGap
				}
			} else {
				head = l.titleBar(contTitle)
				capacity = l.frameHeight - contTitleH - sectionSafetyGap
			}

			end := l.packRows(rows, i, st, capacity)
			if end < len(rows) {
				// More to come on the next page; keep room for the rule and
				// the continuation title that announce the cut.
				shrunk := l.packRows(rows, i, st, capacity-reserve)
				if shrunk > i {
					end = shrunk
				}
			}

			chunk := rows[i:end]
			if !first && len(chunk) > 1 && prevLast != "" &&
				normalizeForCompare(chunk[0]) == normalizeForCompare(prevLast) {
				chunk = chunk[1:]
			}

			place(Group{Blocks: []Block{head, l.box(chunk, st)}})
			prevLast = chunk[len(chunk)-1]
			i = end

			if i < len(rows) {
				place(rule)
			}
			first = false
		}
	}
	return out
}

func buildSectionBlocks(m *Measurer, rep *storage.ReportRecord, styles StyleSet, usableW, frameHeight, topOffset float64) []Block {
	l := &sectionLayout{
		m:           m,
		styles:      styles,
		usableW:     usableW,
		frameHeight: frameHeight,
		topOffset:   topOffset,
	}
	return l.build(rep)
}
