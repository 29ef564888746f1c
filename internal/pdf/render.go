package pdf

// renderFlow paints the flowing blocks between the header and footer chrome,
// opening pages as needed. It mirrors the splitter's simulation exactly: a
// block that no longer fits moves whole to a fresh page, a spacer leading a
// page is dropped, and the only blocks allowed to break internally are the
// ones that implement splitting (tables repeat their header on each part).
func renderFlow(d *drawer, chrome *chromeDrawer, fit FitResult) {
	frameTop := chrome.topMargin + headerHeight + framePadTop
	frameBottom := frameTop + fit.FrameHeight

	newPage := func() float64 {
		d.doc.AddPage()
		chrome.drawPage(d)
		return frameTop
	}

	y := newPage()
	for _, b := range fit.Blocks {
		h := b.Height(d.m, fit.UsableW)

		if y+h > frameBottom+1e-6 {
			if sp, ok := b.(splittable); ok {
				parts := sp.Split(d.m, fit.UsableW, frameBottom-y, fit.FrameHeight)
				for i, p := range parts {
					ph := p.Height(d.m, fit.UsableW)
					if (i > 0 || y+ph > frameBottom+1e-6) && y > frameTop {
						y = newPage()
					}
					p.Draw(d, marginX, y, fit.UsableW)
					y += ph
				}
				continue
			}
			if y > frameTop {
				y = newPage()
			}
		}

		if _, isSpacer := b.(Spacer); isSpacer && y == frameTop {
			continue
		}

		b.Draw(d, marginX, y, fit.UsableW)
		y += h
	}
}
