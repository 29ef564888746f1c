package generate_pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"pronav-backend/internal/pdf"
	"pronav-backend/internal/storage"
)

type ReportStorage interface {
	GetReport(ctx context.Context, id int64, userID string) (*storage.ReportRecord, error)
	GetImages(ctx context.Context, reportID int64) ([]storage.ImageEntry, error)
}

type GeneratePDFService struct {
	storage   ReportStorage
	generator *pdf.Generator
	outDir    string
}

func NewGenerateService(storage ReportStorage, generator *pdf.Generator, outDir string) *GeneratePDFService {
	return &GeneratePDFService{storage: storage, generator: generator, outDir: outDir}
}

// GenerateStored renders the PDF for a saved report. Report row and photo
// set are independent queries, fetched concurrently.
func (g *GeneratePDFService) GenerateStored(ctx context.Context, id int64, userID string) ([]byte, string, error) {
	const op = "service.generate_pdf.GenerateStored"

	var (
		rep    *storage.ReportRecord
		images []storage.ImageEntry
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		rep, err = g.storage.GetReport(egCtx, id, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		images, err = g.storage.GetImages(egCtx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return g.render(rep, images)
}

// GenerateDirect renders a PDF straight from a submitted payload, without
// requiring the report to be saved first.
func (g *GeneratePDFService) GenerateDirect(_ context.Context, rep *storage.ReportRecord, images []storage.ImageEntry) ([]byte, string, error) {
	const op = "service.generate_pdf.GenerateDirect"

	if err := rep.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return g.render(rep, images)
}

// GenerateAndStore renders and also drops a copy in the configured output
// directory, returning the stored path along with the document.
func (g *GeneratePDFService) GenerateAndStore(ctx context.Context, id int64, userID string) ([]byte, string, error) {
	const op = "service.generate_pdf.GenerateAndStore"

	out, name, err := g.GenerateStored(ctx, id, userID)
	if err != nil {
		return nil, "", err
	}

	if g.outDir != "" {
		if err := os.MkdirAll(g.outDir, 0o755); err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
		path := filepath.Join(g.outDir, name)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
	}
	return out, name, nil
}

func (g *GeneratePDFService) render(rep *storage.ReportRecord, images []storage.ImageEntry) ([]byte, string, error) {
	const op = "service.generate_pdf.render"

	out, err := g.generator.Generate(rep, images)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return out, pdf.Filename(rep, time.Now()), nil
}
