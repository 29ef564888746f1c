package pdf

import (
	"math"
	"strings"

	"pronav-backend/internal/constants"
	"pronav-backend/internal/normalize"
	"pronav-backend/internal/storage"
)

// TableBlock is a bordered grid with a gray header row. Column widths are
// fixed in points; the Block width argument is ignored in favor of them.
type TableBlock struct {
	ColWidths   []float64
	Header      []string
	HeaderStyle TextStyle
	// SpanFrom/SpanTo merge a run of header cells (inclusive). SpanTo == 0
	// means no merge.
	SpanFrom, SpanTo int
	HeaderH          float64
	Rows             [][]CellText
	FixedRowH        float64 // 0 means auto height per row
	MaxCellH         float64
	PadLR, PadTB     float64
}

func (t TableBlock) tableWidth() float64 {
	var w float64
	for _, cw := range t.ColWidths {
		w += cw
	}
	return w
}

func (t TableBlock) rowHeight(m *Measurer, row []CellText) float64 {
	if t.FixedRowH > 0 {
		return t.FixedRowH
	}
	var max float64
	for i, cell := range row {
		h := m.TextHeight(cell.Text, cell.Style, t.ColWidths[i]-2*t.PadLR)
		if t.MaxCellH > 0 && h > t.MaxCellH {
			h = t.MaxCellH
		}
		if h > max {
			max = h
		}
	}
	return max + 2*t.PadTB
}

func (t TableBlock) Height(m *Measurer, _ float64) float64 {
	h := t.HeaderH
	for _, row := range t.Rows {
		h += t.rowHeight(m, row)
	}
	return h
}

func (t TableBlock) Draw(d *drawer, x, y, _ float64) {
	w := t.tableWidth()
	h := t.Height(d.m, 0)

	d.fillGray()
	d.rect(x, y, w, t.HeaderH, "FD", lineWidth)
	cx := x
	for i, cell := range t.Header {
		cw := t.ColWidths[i]
		if t.SpanTo > 0 && i >= t.SpanFrom && i <= t.SpanTo {
			if i > t.SpanFrom {
				cx += cw
				continue
			}
			for j := t.SpanFrom + 1; j <= t.SpanTo; j++ {
				cw += t.ColWidths[j]
			}
		}
		if i > 0 {
			d.line(cx, y, cx, y+t.HeaderH, lineWidth/2)
		}
		ty := y + (t.HeaderH-t.HeaderStyle.Leading)/2
		d.textCentered(cx+cw/2, ty, t.HeaderStyle, cell)
		cx += t.ColWidths[i]
	}

	ry := y + t.HeaderH
	for _, row := range t.Rows {
		rh := t.rowHeight(d.m, row)
		d.line(x, ry, x+w, ry, lineWidth/2)
		cx = x
		for i, cell := range row {
			cw := t.ColWidths[i]
			if i > 0 {
				d.line(cx, ry, cx, ry+rh, lineWidth/2)
			}
			d.textWrapped(cx+t.PadLR, ry+t.PadTB, cw-2*t.PadLR, cell.Style, cell.Text, cell.Align)
			cx += cw
		}
		ry += rh
	}

	d.rect(x, y, w, h, "D", lineWidth)
}

// Split breaks the table at row boundaries, repeating the header on every
// chunk. A chunk always carries at least one row so progress is guaranteed.
func (t TableBlock) Split(m *Measurer, _ float64, firstAvail, pageAvail float64) []Block {
	var out []Block
	avail := firstAvail
	chunk := t
	chunk.Rows = nil
	used := t.HeaderH
	for _, row := range t.Rows {
		rh := t.rowHeight(m, row)
		if len(chunk.Rows) > 0 && used+rh > avail {
			out = append(out, chunk)
			chunk.Rows = nil
			used = t.HeaderH
			avail = pageAvail
		}
		chunk.Rows = append(chunk.Rows, row)
		used += rh
	}
	if len(chunk.Rows) > 0 || len(out) == 0 {
		out = append(out, chunk)
	}
	return out
}

// splitProportions divides usableW by the given proportions, rounding each
// column down to whole points and folding the remainder into the last column
// so the sum stays exactly usableW.
func splitProportions(usableW float64, props []float64) []float64 {
	widths := make([]float64, len(props))
	var sum float64
	for i, p := range props {
		widths[i] = math.Floor(p * usableW)
		sum += widths[i]
	}
	widths[len(widths)-1] += usableW - sum
	return widths
}

// equipmentRows returns the rows for the equipment table, falling back to a
// single row synthesized from the flat legacy fields when the list is empty.
// The synthesized row is emitted even when every legacy field is blank, so
// the table frame is always present.
func equipmentRows(rep *storage.ReportRecord) []storage.EquipmentEntry {
	if len(rep.Equipments) > 0 {
		return rep.Equipments
	}
	return []storage.EquipmentEntry{{
		Name:         rep.Equipment,
		Manufacturer: rep.Manufacturer,
		Model:        rep.Model,
		SerialNumber: rep.SerialNumber,
	}}
}

func buildEquipmentBlock(m *Measurer, rep *storage.ReportRecord, styles StyleSet, usableW float64) Block {
	rows := equipmentRows(rep)

	widths := splitProportions(usableW, []float64{0.25, 0.25, 0.25, 0.25})
	padTB := 0.5
	maxH := equipRowH - 2*padTB

	cells := make([][]CellText, 0, len(rows))
	for _, e := range rows {
		fields := []string{e.Name, e.Manufacturer, e.Model, e.SerialNumber}
		row := make([]CellText, len(fields))
		for i, v := range fields {
			row[i] = fitOrTruncate(m, normalize.UpperSafe(v), styles.Value, widths[i]-2*styles.PadSmall, maxH, 6.0)
			row[i].Align = "C"
		}
		cells = append(cells, row)
	}

	return TableBlock{
		ColWidths:   widths,
		Header:      []string{"EQUIPAMENTO", "FABRICANTE", "MODELO", "NÚMERO DE SÉRIE"},
		HeaderStyle: styles.Label,
		HeaderH:     equipHeaderH,
		Rows:        cells,
		FixedRowH:   equipRowH,
		PadLR:       styles.PadSmall,
		PadTB:       padTB,
	}
}

// activityColumnWidths lays out the seven activity columns. A slice of the
// description proportion is moved onto the technician columns, scaled by the
// logo square so narrow pages do not starve them. After integer rounding the
// description cedes up to 18pt more, never dropping below 8% of the usable
// width; each technician column gains 8pt and whatever is left lands in the
// last one, keeping the total width exact.
func activityColumnWidths(usableW float64) []float64 {
	props := []float64{0.09, 0.12, 0.24, 0.43, 0.03, 0.065, 0.065}
	delta := math.Min(0.12, squareSide/usableW)
	props[3] -= delta
	props[5] += delta / 2
	props[6] += delta / 2

	widths := splitProportions(usableW, props)
	shift := 18.0
	if floor := math.Floor(0.08 * usableW); widths[3]-shift < floor {
		shift = math.Max(0, widths[3]-floor)
	}
	widths[3] -= shift
	widths[5] += 8
	widths[6] += shift - 8
	return widths
}

// nbspName joins a name's final surname to the rest with a non-breaking
// space so a technician never wraps mid-name inside a narrow column.
func nbspName(s string) string {
	i := strings.LastIndex(strings.TrimSpace(s), " ")
	if i < 0 {
		return s
	}
	t := strings.TrimSpace(s)
	return t[:i] + " " + t[i+1:]
}

func activityTime(a storage.ActivityEntry) string {
	if a.StartTime != "" || a.EndTime != "" {
		return normalize.CombineTime(normalize.TimeToken(a.StartTime), normalize.TimeToken(a.EndTime))
	}
	return a.Time
}

// descPlaceholders are throwaway descriptions some clients send instead of
// leaving the field empty.
var descPlaceholders = map[string]bool{"x": true, "-": true, "–": true, "—": true}

// stripFold removes every case-insensitive occurrence of sub from s.
func stripFold(s, sub string) string {
	if sub == "" {
		return s
	}
	var b strings.Builder
	ls, lsub := strings.ToLower(s), strings.ToLower(sub)
	for {
		i := strings.Index(ls, lsub)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s, ls = s[i+len(sub):], ls[i+len(lsub):]
	}
}

// activityDescription sanitizes the free-text description: placeholders are
// dropped, origin and destination leak out of the route fields often enough
// that they are stripped back out, an empty result falls back to the
// "Origem x Destino" route, and the motive is appended when the text does not
// already carry it.
func activityDescription(a storage.ActivityEntry) string {
	desc := strings.TrimSpace(a.Description)
	if descPlaceholders[strings.ToLower(desc)] {
		desc = ""
	}
	origin := strings.TrimSpace(a.Origin)
	dest := strings.TrimSpace(a.Destination)
	motive := strings.TrimSpace(a.Motive)

	if desc != "" {
		desc = stripFold(stripFold(desc, origin), dest)
		desc = strings.Trim(strings.Join(strings.Fields(desc), " "), " -")
		if descPlaceholders[strings.ToLower(desc)] {
			desc = ""
		}
	}
	if desc == "" && origin != "" && dest != "" {
		desc = origin + " x " + dest
	}
	if motive != "" && !strings.Contains(strings.ToLower(desc), strings.ToLower(motive)) {
		if desc == "" {
			desc = motive
		} else {
			desc += " - Motivo: " + motive
		}
	}
	return desc
}

func buildActivitiesBlock(m *Measurer, activities []storage.ActivityEntry, styles StyleSet, usableW float64) Block {
	widths := activityColumnWidths(usableW)
	maxH := maxActivityCellH - 2*styles.PadSmall

	fit := func(text string, w float64, align string) CellText {
		c := fitOrTruncate(m, text, styles.Value, w-2*styles.PadSmall, maxH, 6.0)
		c.Align = align
		return c
	}

	rows := make([][]CellText, 0, len(activities))
	for _, a := range activities {
		typeText := strings.TrimSpace(a.Type)
		desc := activityDescription(a)
		if typeText == constants.LaborOnlyType {
			// Pure labor rows carry the fixed description regardless of
			// whatever free text came in.
			desc = constants.LaborOnlyDescription
		}
		km := strings.TrimSpace(a.KM)
		if constants.NoKMTypes[typeText] {
			km = ""
		}
		rows = append(rows, []CellText{
			fit(normalize.DateBR(a.Date), widths[0], "C"),
			fit(activityTime(a), widths[1], "C"),
			fit(typeText, widths[2], "L"),
			fit(desc, widths[3], "L"),
			fit(km, widths[4], "C"),
			fit(nbspName(a.Technician1), widths[5], "C"),
			fit(nbspName(a.Technician2), widths[6], "C"),
		})
	}

	return TableBlock{
		ColWidths:   widths,
		Header:      []string{"DATA", "HORÁRIO", "TIPO DE SERVIÇO", "DESCRIÇÃO DA ATIVIDADE", "KM", "TÉCNICO(S)", ""},
		HeaderStyle: styles.Label,
		SpanFrom:    5,
		SpanTo:      6,
		HeaderH:     equipHeaderH + 2,
		Rows:        rows,
		MaxCellH:    maxActivityCellH,
		PadLR:       styles.PadSmall,
		PadTB:       styles.PadSmall,
	}
}
