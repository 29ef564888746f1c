package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pronav-backend/internal/storage"
)

func smallReport() *storage.ReportRecord {
	return &storage.ReportRecord{
		Client:           "Transpetro",
		Ship:             "NT Dragão do Mar",
		ReportedProblem:  "Radar banda X sem imagem.",
		ServicePerformed: "Substituído o magnetron.",
		Result:           "Equipamento operacional.",
		Activities: []storage.ActivityEntry{
			{Date: "2026-01-10", Type: "Deslocamento", KM: "60", Technician1: "Ana Souza"},
		},
	}
}

func hugeReport() *storage.ReportRecord {
	rep := smallReport()
	rep.ReportedProblem = strings.Repeat("falha intermitente observada durante a navegação costeira ", 200)
	rep.ServicePerformed = strings.Repeat("desmontagem, limpeza, medição e remontagem de todos os módulos ", 300)
	rep.PendingIssues = strings.Repeat("aguardando chegada de sobressalentes importados ", 150)
	return rep
}

func TestAutoFitSmallReportKeepsFullScale(t *testing.T) {
	m := newTestMeasurer()
	fit := autoFit(m, smallReport(), DefaultConfig())

	assert.True(t, fit.Fit)
	assert.Equal(t, 1.0, fit.Scale)
	assert.Equal(t, 1.0, fit.MarginFactor)
	assert.LessOrEqual(t, blockHeightSum(m, fit.Blocks, fit.UsableW), fit.FrameHeight+1e-6)
}

func TestAutoFitScaleStaysInRange(t *testing.T) {
	m := newTestMeasurer()
	cfg := DefaultConfig()

	for _, rep := range []*storage.ReportRecord{smallReport(), hugeReport()} {
		fit := autoFit(m, rep, cfg)
		assert.GreaterOrEqual(t, fit.Scale, cfg.MinScale)
		assert.LessOrEqual(t, fit.Scale, 1.0)
	}
}

func TestAutoFitFallbackUsesMinScaleAndTightMargins(t *testing.T) {
	m := newTestMeasurer()
	cfg := DefaultConfig()
	fit := autoFit(m, hugeReport(), cfg)

	assert.False(t, fit.Fit)
	assert.Equal(t, cfg.MinScale, fit.Scale)
	assert.Equal(t, cfg.MarginFactors[len(cfg.MarginFactors)-1], fit.MarginFactor)
	assert.NotEmpty(t, fit.Blocks)
}

func TestAutoFitDeterministic(t *testing.T) {
	m := newTestMeasurer()
	cfg := DefaultConfig()
	rep := hugeReport()

	a := autoFit(m, rep, cfg)
	b := autoFit(m, rep, cfg)
	assert.Equal(t, a.Scale, b.Scale)
	assert.Equal(t, a.MarginFactor, b.MarginFactor)
	assert.Equal(t, len(a.Blocks), len(b.Blocks))
}

func TestAutoFitEmptyReport(t *testing.T) {
	m := newTestMeasurer()
	fit := autoFit(m, &storage.ReportRecord{}, DefaultConfig())

	assert.True(t, fit.Fit)
	assert.Equal(t, 1.0, fit.Scale)
}

func TestFrameHeightGrowsAsMarginsShrink(t *testing.T) {
	_, _, full := frameHeightFor(1.0)
	_, _, tight := frameHeightFor(0.5)
	assert.Greater(t, tight, full)
}
