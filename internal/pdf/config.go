package pdf

// Config carries the tunable layout knobs. Zero fields are replaced by the
// defaults in fill(); DefaultConfig returns the production values.
type Config struct {
	BaseTitleSize float64
	BaseLabelSize float64
	BaseValueSize float64

	ResponseMultiplier float64 // value cells
	LabelMultiplier    float64 // section titles and table headers
	ServiceMultiplier  float64 // long narrative text

	MinFontSize float64
	MaxFontSize float64

	SmallPad float64
	MedPad   float64

	MinScale      float64
	MarginFactors []float64

	Logo     []byte // optional letterhead image; placeholder text when empty
	LogoType string // "PNG", "JPG", "JPEG" or "GIF"; sniffed when empty
}

func DefaultConfig() Config {
	return Config{
		BaseTitleSize:      7.0,
		BaseLabelSize:      8.2,
		BaseValueSize:      8.2,
		ResponseMultiplier: 1.0,
		LabelMultiplier:    1.0,
		ServiceMultiplier:  1.0,
		MinFontSize:        6.0,
		MaxFontSize:        14.0,
		SmallPad:           2.0,
		MedPad:             3.0,
		MinScale:           0.55,
		MarginFactors:      []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5},
	}
}

func (c Config) fill() Config {
	d := DefaultConfig()
	if c.BaseTitleSize <= 0 {
		c.BaseTitleSize = d.BaseTitleSize
	}
	if c.BaseLabelSize <= 0 {
		c.BaseLabelSize = d.BaseLabelSize
	}
	if c.BaseValueSize <= 0 {
		c.BaseValueSize = d.BaseValueSize
	}
	if c.ResponseMultiplier <= 0 {
		c.ResponseMultiplier = d.ResponseMultiplier
	}
	if c.LabelMultiplier <= 0 {
		c.LabelMultiplier = d.LabelMultiplier
	}
	if c.ServiceMultiplier <= 0 {
		c.ServiceMultiplier = d.ServiceMultiplier
	}
	if c.MinFontSize <= 0 {
		c.MinFontSize = d.MinFontSize
	}
	if c.MaxFontSize <= 0 {
		c.MaxFontSize = d.MaxFontSize
	}
	if c.SmallPad <= 0 {
		c.SmallPad = d.SmallPad
	}
	if c.MedPad <= 0 {
		c.MedPad = d.MedPad
	}
	if c.MinScale <= 0 {
		c.MinScale = d.MinScale
	}
	if len(c.MarginFactors) == 0 {
		c.MarginFactors = d.MarginFactors
	}
	return c
}
