package pdf

import "pronav-backend/internal/constants"

// galleryImage pairs a registered document image with its caption. An empty
// name marks an image that failed to decode; its cell gets an outlined
// placeholder so the caption list never slips out of alignment.
type galleryImage struct {
	name    string
	caption string
}

const (
	galleryCols    = 3
	galleryRows    = 3
	galleryCellPad = 4.0
)

// drawGalleryPages appends the photo annex: full chrome pages carrying a
// 3x3 grid of images stretched to their cells, caption underneath each.
func drawGalleryPages(d *drawer, chrome *chromeDrawer, fit FitResult, images []galleryImage) {
	if len(images) == 0 {
		return
	}

	capStyle := TextStyle{Font: baseFont, Style: "", Size: 6.5, Leading: 7.0}
	captionH := 2 * capStyle.Leading

	title := TitleBar{
		Text:  constants.GalleryTitle,
		Style: fit.Styles.Title,
		PadLR: fit.Styles.PadSmall,
		PadTB: fit.Styles.PadSmall,
		Align: "C",
	}
	titleH := title.Height(d.m, fit.UsableW)

	frameTop := chrome.topMargin + headerHeight + framePadTop
	gridTop := frameTop + titleH + 2
	gridH := fit.FrameHeight - titleH - 2
	cellW := fit.UsableW / galleryCols
	cellH := gridH / galleryRows

	perPage := galleryCols * galleryRows
	for start := 0; start < len(images); start += perPage {
		d.doc.AddPage()
		chrome.drawPage(d)
		title.Draw(d, marginX, frameTop, fit.UsableW)

		page := images[start:]
		if len(page) > perPage {
			page = page[:perPage]
		}
		for i, img := range page {
			col := i % galleryCols
			row := i / galleryCols
			x := marginX + float64(col)*cellW
			y := gridTop + float64(row)*cellH

			imgX := x + galleryCellPad
			imgY := y + galleryCellPad
			imgW := cellW - 2*galleryCellPad
			imgH := cellH - captionH - 2*galleryCellPad

			if img.name != "" {
				// Stretched to the cell on purpose; the grid stays regular
				// even when photos arrive in mixed orientations.
				d.doc.Image(img.name, imgX, imgY, imgW, imgH, false, "", 0, "")
			} else {
				d.rect(imgX, imgY, imgW, imgH, "D", lineWidth/2)
			}

			caption := fitOrTruncate(d.m, img.caption, capStyle, imgW, captionH, 6.0)
			d.textWrapped(imgX, imgY+imgH+1, imgW, caption.Style, caption.Text, "C")
		}
	}
}
