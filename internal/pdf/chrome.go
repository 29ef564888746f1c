package pdf

import (
	"fmt"
	"math"
	"strings"

	"pronav-backend/internal/constants"
	"pronav-backend/internal/normalize"
	"pronav-backend/internal/storage"
)

// chromeDrawer paints the fixed per-page furniture: letterhead header with
// the logo square and three label/value rows, the satisfaction statement bar,
// the signature block and the page number. Every page of a document gets
// identical chrome; only the flowing frame between header and footer varies.
type chromeDrawer struct {
	rep    *storage.ReportRecord
	styles StyleSet

	topMargin    float64
	bottomMargin float64
	usableW      float64

	logoName string // registered image name, empty for the text placeholder
	logoW    float64
	logoH    float64
}

func (c *chromeDrawer) labelStyle() TextStyle {
	st := c.styles.Label
	st.Size = math.Max(7.0, math.Floor(st.Size))
	st.Leading = leadingFor(st.Size, 7.0, 1.05)
	return st
}

func (c *chromeDrawer) valueStyle() TextStyle {
	st := c.styles.Value
	st.Size = math.Max(7.0, math.Floor(st.Size))
	st.Leading = leadingFor(st.Size, 7.0, 1.06)
	return st
}

func (c *chromeDrawer) drawPage(d *drawer) {
	c.drawHeader(d)
	c.drawFooter(d)
	c.drawPageNumber(d)
}

func (c *chromeDrawer) drawHeader(d *drawer) {
	top := c.topMargin
	left := marginX
	right := marginX + c.usableW
	logoRight := left + squareSide

	// Contact line sits just above the header frame.
	contact := TextStyle{Font: baseFont, Style: "", Size: 6.0, Leading: 7.0}
	d.textCentered((left+right)/2, top-3.6-contact.Size*0.8, contact, constants.ContactLine)

	// Title band spans from the logo square to the right edge.
	d.fillGray()
	d.rect(logoRight, top, right-logoRight, headerRow0, "FD", lineWidth)
	title := c.styles.Title
	title.Size = math.Max(9.0, title.Size+2)
	d.textCentered((logoRight+right)/2, top+(headerRow0-title.Size*0.8)/2-1, title, constants.DocumentTitle)

	// Outer frame and the logo square.
	d.rect(left, top, c.usableW, headerHeight, "D", lineWidth)
	d.rect(left, top, squareSide, headerHeight, "D", lineWidth)
	c.drawLogo(d, left, top)

	// Row separators to the right of the logo square.
	y0 := top + headerRow0
	y1 := y0 + headerRow
	y2 := y1 + headerRow
	for _, y := range []float64{y0, y1, y2} {
		d.line(logoRight, y, right, y, lineWidth)
	}

	c.drawHeaderRows(d, logoRight, right, y0)
}

// drawHeaderRows lays out the three label/value rows: a left label, a left
// value, a short right label and a right value per row. The fixed widths are
// rebalanced when the right value column would drop below its minimum.
func (c *chromeDrawer) drawHeaderRows(d *drawer, left, right, top float64) {
	labelW := 74.88
	valLeftW := 205.92
	labelW2 := 36.0
	minValRight := 54.0

	valRightW := right - left - labelW - valLeftW - labelW2
	if valRightW < minValRight {
		valLeftW -= minValRight - valRightW
		valRightW = minValRight
	}

	xLabel := left
	xValue := left + labelW
	xLabel2 := xValue + valLeftW
	xValue2 := xLabel2 + labelW2

	d.line(xLabel2, top, xLabel2, top+3*headerRow, lineWidth)

	rep := c.rep
	localParts := make([]string, 0, 3)
	for _, p := range []string{rep.Local, rep.City, rep.State} {
		if s := strings.TrimSpace(p); s != "" {
			localParts = append(localParts, s)
		}
	}

	rows := []struct {
		label, value, label2, value2 string
	}{
		{"NAVIO:", rep.Ship, "CLIENTE:", rep.Client},
		{"CONTATO:", rep.Contact, "OBRA:", rep.Work},
		{"LOCAL:", strings.Join(localParts, " - "), "OS:", rep.OS},
	}

	lst := c.labelStyle()
	vst := c.valueStyle()
	for i, row := range rows {
		y := top + float64(i)*headerRow
		baseY := y + (headerRow-vst.Leading)/2
		d.text(xLabel+2, baseY, lst, row.label)
		d.text(xValue+2, baseY, vst,
			truncateToWidth(d.m, normalize.UpperSafe(row.value), vst, valLeftW-4))
		d.text(xLabel2+2, baseY, lst, row.label2)
		d.text(xValue2+2, baseY, vst,
			truncateToWidth(d.m, normalize.UpperSafe(row.value2), vst, right-xValue2-4))
	}
}

func (c *chromeDrawer) drawLogo(d *drawer, left, top float64) {
	if c.logoName == "" {
		st := TextStyle{Font: baseFont, Style: "B", Size: 12, Leading: 14}
		d.doc.SetTextColor(51, 51, 51)
		d.m.setFont(st)
		d.doc.Text(left+squareSide/2-d.m.StringWidth(constants.LogoPlaceholder, st)/2,
			top+headerHeight/2+st.Size*0.3, constants.LogoPlaceholder)
		d.doc.SetTextColor(0, 0, 0)
		return
	}
	x := left + (squareSide-c.logoW)/2
	y := top + (headerHeight-c.logoH)/2
	d.doc.Image(c.logoName, x, y, c.logoW, c.logoH, false, "", 0, "")
}

func (c *chromeDrawer) drawFooter(d *drawer) {
	left := marginX
	right := marginX + c.usableW
	barTop := pageH - c.bottomMargin - footerBarH
	sigTop := barTop - sigHeaderH - sigAreaH
	mid := (left + right) / 2

	// Signature block: two boxes with gray caption bands.
	d.rect(left, sigTop, c.usableW, sigHeaderH+sigAreaH, "D", lineWidth)
	d.fillGray()
	d.rect(left, sigTop, c.usableW, sigHeaderH, "FD", lineWidth)
	d.line(mid, sigTop, mid, barTop, lineWidth)

	sigStyle := c.labelStyle()
	capY := sigTop + (sigHeaderH-sigStyle.Leading)/2
	d.textCentered((left+mid)/2, capY, sigStyle, constants.SignatureLeft)
	d.textCentered((mid+right)/2, capY, sigStyle, constants.SignatureRight)

	// Statement bar.
	d.fillGray()
	d.rect(left, barTop, c.usableW, footerBarH, "FD", lineWidth)
	st := c.labelStyle()
	d.textCentered(mid, barTop+(footerBarH-st.Leading)/2, st, constants.FooterStatement)
}

func (c *chromeDrawer) drawPageNumber(d *drawer) {
	st := TextStyle{Font: baseFont, Style: "", Size: 6.5, Leading: 7.0}
	y := pageH - math.Max(6.5, c.bottomMargin) + 0.5
	d.textCentered(marginX+c.usableW/2, y-st.Size*0.8,
		st, fmt.Sprintf("Página %d", d.doc.PageNo()))
}
