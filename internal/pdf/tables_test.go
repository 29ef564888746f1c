package pdf

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pronav-backend/internal/storage"
)

func TestActivityColumnWidthsConserveTotal(t *testing.T) {
	for _, w := range []float64{561.6, 500, 400} {
		widths := activityColumnWidths(w)
		assert.Len(t, widths, 7)
		var sum float64
		for _, cw := range widths {
			sum += cw
		}
		assert.InDelta(t, w, sum, 1e-9, "usable width %v", w)
		for i, cw := range widths {
			assert.Greater(t, cw, 0.0, "column %d", i)
		}
	}
}

func TestActivityColumnWidthsShiftTowardTechnicians(t *testing.T) {
	w := usableWidth() // 561.6
	widths := activityColumnWidths(w)

	// Post-rounding, the description cedes 18pt: 8pt to each technician
	// column and the 2pt residue to the last one.
	assert.InDelta(t, 156, widths[3], 1e-9)
	assert.InDelta(t, 78, widths[5], 1e-9)
	assert.GreaterOrEqual(t, widths[3], math.Floor(0.08*w))
}

func TestActivitiesNoKMTypesBlankKM(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())

	acts := []storage.ActivityEntry{
		{Date: "2026-01-10", Type: "Mão-de-obra Técnica", KM: "120", Technician1: "Ana Souza"},
		{Date: "2026-01-10", Type: "Período de Espera", KM: "55", Technician1: "Ana Souza"},
		{Date: "2026-01-10", Type: "Deslocamento", KM: "80", Technician1: "Ana Souza"},
	}
	tb := buildActivitiesBlock(m, acts, styles, usableWidth()).(TableBlock)

	assert.Equal(t, "", tb.Rows[0][4].Text)
	assert.Equal(t, "", tb.Rows[1][4].Text)
	assert.Equal(t, "80", tb.Rows[2][4].Text)
}

func TestActivitiesLaborOnlyFixedDescription(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())

	acts := []storage.ActivityEntry{
		{Date: "2026-01-10", Type: "Mão-de-obra Técnica", Description: "texto livre qualquer", Technician1: "Ana Souza"},
	}
	tb := buildActivitiesBlock(m, acts, styles, usableWidth()).(TableBlock)

	// The type cell keeps the type; the description is replaced wholesale.
	assert.Equal(t, "Mão-de-obra Técnica", tb.Rows[0][2].Text)
	assert.Equal(t, "Mão-de-Obra-Técnica", tb.Rows[0][3].Text)
}

func TestActivityDescriptionSanitized(t *testing.T) {
	cases := []struct {
		name string
		a    storage.ActivityEntry
		want string
	}{
		{
			name: "placeholder cleared to route",
			a:    storage.ActivityEntry{Description: "X", Origin: "Macaé", Destination: "Vitória"},
			want: "Macaé x Vitória",
		},
		{
			name: "origin and destination stripped",
			a:    storage.ActivityEntry{Description: "Deslocamento Macaé Vitória de carro", Origin: "Macaé", Destination: "Vitória"},
			want: "Deslocamento de carro",
		},
		{
			name: "precomposed route reduces to fallback",
			a:    storage.ActivityEntry{Description: "Macaé x Vitória", Origin: "Macaé", Destination: "Vitória"},
			want: "Macaé x Vitória",
		},
		{
			name: "motive appended",
			a:    storage.ActivityEntry{Description: "Atendimento a bordo", Motive: "pane no radar"},
			want: "Atendimento a bordo - Motivo: pane no radar",
		},
		{
			name: "motive already present",
			a:    storage.ActivityEntry{Description: "Atendimento por pane no radar", Motive: "pane no radar"},
			want: "Atendimento por pane no radar",
		},
		{
			name: "empty falls back to motive",
			a:    storage.ActivityEntry{Motive: "espera de peças"},
			want: "espera de peças",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, activityDescription(tc.a))
		})
	}
}

func TestActivitiesRouteComposition(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())

	acts := []storage.ActivityEntry{
		{Date: "2026-01-10", Type: "Translado", Origin: "Macaé", Destination: "Rio das Ostras", Technician1: "Ana Souza"},
	}
	tb := buildActivitiesBlock(m, acts, styles, usableWidth()).(TableBlock)
	assert.Equal(t, "Macaé x Rio das Ostras", tb.Rows[0][3].Text)
}

func TestActivitiesTechnicianNonBreakingName(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())

	acts := []storage.ActivityEntry{
		{Date: "2026-01-10", Type: "Deslocamento", KM: "10", Technician1: "João Pedro Lima"},
	}
	tb := buildActivitiesBlock(m, acts, styles, usableWidth()).(TableBlock)
	assert.Equal(t, "João Pedro Lima", tb.Rows[0][5].Text)
}

func TestActivitiesTimeRangeJoined(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())

	acts := []storage.ActivityEntry{
		{Date: "2026-01-10", Type: "Deslocamento", KM: "10", StartTime: "8", EndTime: "17:30", Technician1: "Ana"},
	}
	tb := buildActivitiesBlock(m, acts, styles, usableWidth()).(TableBlock)
	assert.Equal(t, "08:00 às 17:30", tb.Rows[0][1].Text)
}

func TestEquipmentRowsSynthesizedFromLegacyFields(t *testing.T) {
	rep := &storage.ReportRecord{
		Equipment:    "Radar X",
		Manufacturer: "Furuno",
		Model:        "FAR-1513",
		SerialNumber: "4711",
	}
	rows := equipmentRows(rep)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Radar X", rows[0].Name)
	assert.Equal(t, "4711", rows[0].SerialNumber)
}

func TestEquipmentRowsPreferList(t *testing.T) {
	rep := &storage.ReportRecord{
		Equipment:  "Antigo",
		Equipments: []storage.EquipmentEntry{{Name: "GPS"}, {Name: "Ecobatímetro"}},
	}
	rows := equipmentRows(rep)
	assert.Len(t, rows, 2)
	assert.Equal(t, "GPS", rows[0].Name)
}

func TestEquipmentRowsAlwaysSynthesized(t *testing.T) {
	rows := equipmentRows(&storage.ReportRecord{})
	assert.Len(t, rows, 1)
	assert.Equal(t, storage.EquipmentEntry{}, rows[0])
}

func TestTableBlockSplitRepeatsHeader(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())

	acts := make([]storage.ActivityEntry, 40)
	for i := range acts {
		acts[i] = storage.ActivityEntry{
			Date: "2026-01-10", Type: "Deslocamento", KM: "10",
			Description: strings.Repeat("manutenção preventiva ", 5),
			Technician1: "Ana Souza",
		}
	}
	tb := buildActivitiesBlock(m, acts, styles, usableWidth()).(TableBlock)

	parts := tb.Split(m, usableWidth(), 200, 500)
	assert.Greater(t, len(parts), 1)
	total := 0
	for i, p := range parts {
		part := p.(TableBlock)
		assert.Equal(t, tb.Header, part.Header, "part %d", i)
		assert.NotEmpty(t, part.Rows, "part %d", i)
		total += len(part.Rows)
		if i > 0 {
			assert.LessOrEqual(t, part.Height(m, 0), 500+1e-6, "part %d", i)
		}
	}
	assert.Equal(t, len(tb.Rows), total)
}
