package pdf

import "pronav-backend/internal/storage"

// FitResult is the outcome of the auto-fit search: the chosen scale and
// margins plus the final block list, built with splitting enabled so it is
// ready for the paginator. Fit reports whether everything landed on one page;
// when false the fallback layout flows across pages at the minimum scale.
type FitResult struct {
	Fit          bool
	Scale        float64
	MarginFactor float64
	TopMargin    float64
	BottomMargin float64
	UsableW      float64
	FrameHeight  float64
	Styles       StyleSet
	Blocks       []Block
}

func blockHeightSum(m *Measurer, blocks []Block, width float64) float64 {
	var h float64
	for _, b := range blocks {
		h += b.Height(m, width)
	}
	return h
}

// buildAllBlocks assembles the full flowing content at one scale. With
// frameHeight <= 0 the sections come back unsplit, which is the shape the
// fit estimator measures; with a real frameHeight the splitter runs and the
// result is what actually gets painted.
func buildAllBlocks(m *Measurer, rep *storage.ReportRecord, styles StyleSet, usableW, frameHeight float64) []Block {
	blocks := []Block{
		Spacer{H: 1},
		buildEquipmentBlock(m, rep, styles, usableW),
		Spacer{H: 2},
	}
	topOffset := blockHeightSum(m, blocks, usableW)
	blocks = append(blocks, buildSectionBlocks(m, rep, styles, usableW, frameHeight, topOffset)...)
	if len(rep.Activities) > 0 {
		blocks = append(blocks,
			Spacer{H: 2},
			buildActivitiesBlock(m, rep.Activities, styles, usableW),
		)
	}
	return blocks
}

const (
	fitTolerance     = 0.005
	fitMaxIterations = 12
)

// autoFit searches for the largest typography that puts the whole report on
// a single page. Margin reductions are tried outermost, least aggressive
// first; within each, scale 1.0 is short-circuited and otherwise the scale
// is binary-searched down to the configured minimum. When nothing fits, the
// layout falls back to the minimum scale with the most reduced margins and
// lets the section splitter flow onto more pages. Never fails.
func autoFit(m *Measurer, rep *storage.ReportRecord, cfg Config) FitResult {
	usableW := usableWidth()

	estimate := func(scale float64) float64 {
		styles := ResolveStyles(scale, cfg)
		blocks := buildAllBlocks(m, rep, styles, usableW, 0)
		return blockHeightSum(m, blocks, usableW)
	}

	finish := func(scale, factor float64, fit bool) FitResult {
		top, bottom, frame := frameHeightFor(factor)
		styles := ResolveStyles(scale, cfg)
		return FitResult{
			Fit:          fit,
			Scale:        scale,
			MarginFactor: factor,
			TopMargin:    top,
			BottomMargin: bottom,
			UsableW:      usableW,
			FrameHeight:  frame,
			Styles:       styles,
			Blocks:       buildAllBlocks(m, rep, styles, usableW, frame),
		}
	}

	for _, factor := range cfg.MarginFactors {
		_, _, frame := frameHeightFor(factor)

		if estimate(1.0) <= frame {
			return finish(1.0, factor, true)
		}
		if estimate(cfg.MinScale) > frame {
			continue
		}

		lo, hi := cfg.MinScale, 1.0 // lo fits, hi does not
		for i := 0; i < fitMaxIterations && hi-lo > fitTolerance; i++ {
			mid := (lo + hi) / 2
			if estimate(mid) <= frame {
				lo = mid
			} else {
				hi = mid
			}
		}
		return finish(lo, factor, true)
	}

	last := cfg.MarginFactors[len(cfg.MarginFactors)-1]
	return finish(cfg.MinScale, last, false)
}
