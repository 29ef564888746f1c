package pdf

// Page geometry in points. Letter portrait; fixed chrome heights match the
// printed form: logo square and three-row label grid on top, statement bar
// plus a two-column signature block at the bottom.
const (
	pageW = 612.0
	pageH = 792.0

	marginX          = 25.2  // left/right, fixed
	baseTopMargin    = 18.0  // reduced by margin factors when content overflows
	baseBottomMargin = 8.64  // idem
	framePadTop      = 4.0
	framePadBottom   = 4.0

	squareSide   = 84.96 // logo box, also drives activity column reallocation
	headerRow0   = 15.84 // title band
	headerRow    = 18.72 // each label/value row
	headerHeight = headerRow0 + 3*headerRow

	sigHeaderH   = 17.28
	sigAreaH     = 43.2
	footerBarH   = 17.28
	footerTotalH = footerBarH + sigHeaderH + sigAreaH

	lineWidth = 0.6

	maxActivityCellH = 50.4 // 0.7in, per-cell wrap budget in the activity table
	maxSectionRowH   = 64.8 // 0.9in, one body row budget in narrative sections

	equipHeaderH = 11.52
	equipRowH    = 10.08
)

const (
	grayR, grayG, grayB = 217, 217, 217 // #D9D9D9 band fill
)

// usableWidth is the flowing-content width; chrome and content share it.
func usableWidth() float64 { return pageW - 2*marginX }

// frameHeightFor computes the vertical space left for flowing content once a
// margin factor is applied to the preserved top/bottom margins.
func frameHeightFor(marginFactor float64) (top, bottom, frame float64) {
	top = baseTopMargin * marginFactor
	bottom = baseBottomMargin * marginFactor
	frame = pageH - top - headerHeight - footerTotalH - bottom - framePadTop - framePadBottom
	return top, bottom, frame
}
