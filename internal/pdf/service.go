package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/transform"

	"pronav-backend/internal/storage"
)

// Generator renders service reports to PDF. Safe for concurrent use: each
// Generate call builds its own document.
type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	return &Generator{cfg: cfg.fill()}
}

// Generate lays out rep and its photo annex and returns the finished PDF.
// Layout never fails: content that cannot fit one page flows onto more pages
// at the minimum scale. An error here means the document itself could not be
// produced.
func (g *Generator) Generate(rep *storage.ReportRecord, images []storage.ImageEntry) ([]byte, error) {
	const op = "pdf.service.Generate"

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle("Relatório de Serviço", true)
	doc.SetCreator("PRONAV", true)

	m := NewMeasurer(doc)
	d := &drawer{doc: doc, m: m}

	fit := autoFit(m, rep, g.cfg)

	chrome := &chromeDrawer{
		rep:          rep,
		styles:       fit.Styles,
		topMargin:    fit.TopMargin,
		bottomMargin: fit.BottomMargin,
		usableW:      fit.UsableW,
	}
	g.registerLogo(doc, chrome)

	renderFlow(d, chrome, fit)
	drawGalleryPages(d, chrome, fit, registerGalleryImages(doc, images))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) registerLogo(doc *fpdf.Fpdf, chrome *chromeDrawer) {
	w, h, name := registerImage(doc, "letterhead_logo", g.cfg.Logo)
	if name == "" {
		return
	}
	// Fit inside the square preserving aspect, leaving a visual inset.
	maxW, maxH := squareSide-12, headerHeight-12
	ratio := w / h
	chrome.logoW = maxW
	chrome.logoH = maxW / ratio
	if chrome.logoH > maxH {
		chrome.logoH = maxH
		chrome.logoW = maxH * ratio
	}
	chrome.logoName = name
}

// registerGalleryImages validates and registers each photo. A broken image
// keeps its slot with an empty name; registering it anyway would poison the
// document's sticky error and take every later page down with it.
func registerGalleryImages(doc *fpdf.Fpdf, images []storage.ImageEntry) []galleryImage {
	out := make([]galleryImage, 0, len(images))
	for i, img := range images {
		_, _, name := registerImage(doc, fmt.Sprintf("gallery_%d", i), img.Bytes)
		out = append(out, galleryImage{name: name, caption: img.Caption})
	}
	return out
}

// registerImage decodes, sniffs and registers raw image bytes, returning the
// intrinsic size and the registered name. Empty name means the data was
// missing or undecodable.
func registerImage(doc *fpdf.Fpdf, name string, data []byte) (w, h float64, registered string) {
	if len(data) == 0 {
		return 0, 0, ""
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, ""
	}

	var imgType string
	switch http.DetectContentType(data) {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg":
		imgType = "JPG"
	case "image/gif":
		imgType = "GIF"
	default:
		return 0, 0, ""
	}

	doc.RegisterImageOptionsReader(name,
		fpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(data))
	if doc.Err() {
		return 0, 0, ""
	}
	return float64(cfg.Width), float64(cfg.Height), name
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

func filenamePart(s string) string {
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	return filenameSanitizer.ReplaceAllString(s, "")
}

// Filename builds the download name: RS_<YYYYMMDD>_<ship>[_<equipment>].pdf
// with spaces turned into underscores and unsafe characters dropped.
func Filename(rep *storage.ReportRecord, now time.Time) string {
	parts := []string{"RS", now.Format("20060102")}
	if p := filenamePart(rep.Ship); p != "" {
		parts = append(parts, p)
	}
	equip := rep.Equipment
	if equip == "" && len(rep.Equipments) > 0 {
		equip = rep.Equipments[0].Name
	}
	if p := filenamePart(equip); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, "_") + ".pdf"
}
