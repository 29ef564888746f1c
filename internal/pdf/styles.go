package pdf

import "math"

// StyleSet is the full typographic state for one candidate scale. Resolving
// is pure: the same scale and config always produce the same set, which is
// what lets the auto-fit search binary-chop over scales.
type StyleSet struct {
	Scale float64

	Title      TextStyle // document and section titles, bold
	Label      TextStyle // field labels and table headers, bold
	Value      TextStyle // regular cell text
	LargeValue TextStyle // narrative section bodies

	PadSmall float64
	PadMed   float64
}

const baseFont = "Helvetica"

func leadingFor(size, floor, mult float64) float64 {
	return math.Max(floor, size*mult)
}

func clampSize(size, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, size))
}

// ResolveStyles maps a scale factor in (0,1] to concrete font sizes, leadings
// and paddings. Sizes shrink monotonically with scale but never below the
// configured minimum; leadings keep an absolute floor so lines stay readable.
func ResolveStyles(scale float64, cfg Config) StyleSet {
	titleSz := math.Max(7.0, cfg.BaseTitleSize*scale)
	valueSz := clampSize(cfg.BaseValueSize*scale*cfg.ResponseMultiplier, cfg.MinFontSize, cfg.MaxFontSize)
	labelSz := clampSize(cfg.BaseLabelSize*scale*cfg.LabelMultiplier, cfg.MinFontSize, cfg.MaxFontSize)
	largeSz := math.Max(valueSz, clampSize(valueSz*cfg.ServiceMultiplier, cfg.MinFontSize, cfg.MaxFontSize))

	return StyleSet{
		Scale: scale,
		Title: TextStyle{
			Font: baseFont, Style: "B",
			Size: titleSz, Leading: leadingFor(titleSz, 8.0, 1.15),
		},
		Label: TextStyle{
			Font: baseFont, Style: "B",
			Size: labelSz, Leading: leadingFor(labelSz, 7.0, 1.05),
		},
		Value: TextStyle{
			Font: baseFont, Style: "",
			Size: valueSz, Leading: leadingFor(valueSz, 7.0, 1.06),
		},
		LargeValue: TextStyle{
			Font: baseFont, Style: "",
			Size: largeSz, Leading: leadingFor(largeSz, 8.0, 1.06),
		},
		PadSmall: math.Max(1.0, math.Round(cfg.SmallPad*scale)),
		PadMed:   math.Max(1.0, math.Round(cfg.MedPad*scale)),
	}
}
