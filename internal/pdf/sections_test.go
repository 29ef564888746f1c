package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pronav-backend/internal/constants"
	"pronav-backend/internal/storage"
)

func TestSectionRowsOneRowPerParagraph(t *testing.T) {
	m := newTestMeasurer()
	st := testStyle()
	body := "Primeiro parágrafo.\n\nSegundo parágrafo.\n\nTerceiro parágrafo."

	rows := sectionRows(m, body, st, usableWidth(), 3)
	assert.Equal(t, []string{
		"Primeiro parágrafo.",
		"Segundo parágrafo.",
		"Terceiro parágrafo.",
	}, rows)
}

func TestSectionRowsEmptyBodyKeepsBlankRow(t *testing.T) {
	m := newTestMeasurer()
	rows := sectionRows(m, "", testStyle(), usableWidth(), 3)
	assert.Equal(t, []string{""}, rows)
}

func TestSectionRowsChunksOversizedParagraph(t *testing.T) {
	m := newTestMeasurer()
	st := testStyle()
	body := strings.TrimSpace(strings.Repeat("inspeção completa da antena do radar de banda S ", 60))

	rows := sectionRows(m, body, st, usableWidth(), 3)
	assert.Greater(t, len(rows), 1)
	for i, row := range rows {
		assert.LessOrEqual(t, m.TextHeight(row, st, usableWidth()-6), maxSectionRowH+1e-6, "row %d", i)
	}
}

func TestBuildSectionsUnsplitEmitsOneGroupPerSection(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())
	rep := &storage.ReportRecord{ReportedProblem: "Radar sem imagem."}

	blocks := buildSectionBlocks(m, rep, styles, usableWidth(), 0, 0)
	assert.Len(t, blocks, len(constants.SectionTitles))
	for i, b := range blocks {
		g, ok := b.(Group)
		assert.True(t, ok, "block %d", i)
		assert.Len(t, g.Blocks, 2)
		_, ok = g.Blocks[0].(TitleBar)
		assert.True(t, ok, "block %d title", i)
		_, ok = g.Blocks[1].(TextBox)
		assert.True(t, ok, "block %d box", i)
	}
}

func TestBuildSectionsLargeStyleOnlyForServicePerformed(t *testing.T) {
	m := newTestMeasurer()
	cfg := DefaultConfig()
	cfg.ServiceMultiplier = 1.3
	styles := ResolveStyles(1.0, cfg)
	assert.Greater(t, styles.LargeValue.Size, styles.Value.Size)

	rep := &storage.ReportRecord{
		ReportedProblem:  "Radar sem imagem.",
		ServicePerformed: "Troca do magnetron.",
		Result:           "Operacional.",
	}
	blocks := buildSectionBlocks(m, rep, styles, usableWidth(), 0, 0)
	for i, b := range blocks {
		box := b.(Group).Blocks[1].(TextBox)
		if i == 1 {
			assert.Equal(t, styles.LargeValue, box.Style, "section %d", i+1)
		} else {
			assert.Equal(t, styles.Value, box.Style, "section %d", i+1)
		}
	}
}

func TestBuildSectionsTitlesAreNumbered(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())

	blocks := buildSectionBlocks(m, &storage.ReportRecord{}, styles, usableWidth(), 0, 0)
	first := blocks[0].(Group).Blocks[0].(TitleBar)
	assert.Equal(t, "1. "+constants.SectionTitles[0], first.Text)
	last := blocks[len(blocks)-1].(Group).Blocks[0].(TitleBar)
	assert.Equal(t, "6. "+constants.SectionTitles[5], last.Text)
}

func collectTitles(blocks []Block) []string {
	var titles []string
	for _, b := range blocks {
		g, ok := b.(Group)
		if !ok {
			continue
		}
		if tb, ok := g.Blocks[0].(TitleBar); ok {
			titles = append(titles, tb.Text)
		}
	}
	return titles
}

func TestBuildSectionsSplitsLongSectionWithContinuation(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())
	rep := &storage.ReportRecord{
		ServicePerformed: strings.TrimSpace(strings.Repeat("Troca do magnetron e alinhamento do guia de onda. ", 400)),
	}
	_, _, frame := frameHeightFor(1.0)

	blocks := buildSectionBlocks(m, rep, styles, usableWidth(), frame, 0)
	titles := collectTitles(blocks)

	cont := "2. " + constants.SectionTitles[1] + constants.ContinuationSuffix
	assert.Contains(t, titles, cont)

	// A rule precedes every continuation group.
	for i, b := range blocks {
		if g, ok := b.(Group); ok {
			if tb, ok := g.Blocks[0].(TitleBar); ok && strings.HasSuffix(tb.Text, constants.ContinuationSuffix) {
				_, isRule := blocks[i-1].(Rule)
				assert.True(t, isRule, "block before continuation %d", i)
			}
		}
	}
}

func TestBuildSectionsEveryGroupFitsAPage(t *testing.T) {
	m := newTestMeasurer()
	styles := ResolveStyles(0.55, DefaultConfig())
	rep := &storage.ReportRecord{
		ReportedProblem:  strings.Repeat("falha intermitente no transceptor ", 150),
		ServicePerformed: strings.Repeat("substituição do módulo de potência ", 300),
		Result:           strings.Repeat("equipamento operacional ", 100),
	}
	_, _, frame := frameHeightFor(0.5)

	blocks := buildSectionBlocks(m, rep, styles, usableWidth(), frame, 0)
	for i, b := range blocks {
		if g, ok := b.(Group); ok {
			assert.LessOrEqual(t, g.Height(m, usableWidth()), frame+1e-6, "group %d", i)
		}
	}
}

func TestBuildSectionsNoOrphanTitles(t *testing.T) {
	// Title groups always carry at least one body row, so a page break can
	// never leave a bare title at the bottom of a page.
	m := newTestMeasurer()
	styles := ResolveStyles(1.0, DefaultConfig())
	rep := &storage.ReportRecord{
		ReportedProblem: strings.Repeat("ruído excessivo ", 200),
		PendingIssues:   strings.Repeat("aguardando peça ", 200),
	}
	_, _, frame := frameHeightFor(1.0)

	blocks := buildSectionBlocks(m, rep, styles, usableWidth(), frame, 0)
	for i, b := range blocks {
		g, ok := b.(Group)
		if !ok {
			continue
		}
		box, ok := g.Blocks[1].(TextBox)
		assert.True(t, ok, "group %d", i)
		assert.NotEmpty(t, box.Rows, "group %d", i)
	}
}
