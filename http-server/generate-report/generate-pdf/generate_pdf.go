package generate_pdf

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pronav-backend/http-server/report/save"
	"pronav-backend/internal/storage"
)

type GeneratePDFHandler interface {
	GenerateStored(ctx context.Context, id int64, userID string) ([]byte, string, error)
	GenerateAndStore(ctx context.Context, id int64, userID string) ([]byte, string, error)
	GenerateDirect(ctx context.Context, rep *storage.ReportRecord, images []storage.ImageEntry) ([]byte, string, error)
}

func writePDF(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.Write(data)
}

// GenerateReportPDF renders the PDF of a saved report.
func GenerateReportPDF(log *slog.Logger, gen GeneratePDFHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate_pdf.GenerateReportPDF"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "ID inválido", http.StatusBadRequest)
			return
		}
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "user_id obrigatório", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		// store=1 also drops a copy in the configured output directory.
		generate := gen.GenerateStored
		if r.URL.Query().Get("store") == "1" {
			generate = gen.GenerateAndStore
		}

		data, name, err := generate(ctx, id, userID)
		if err != nil {
			if errors.Is(err, storage.ErrReportNotFound) {
				http.Error(w, "Relatório não encontrado", http.StatusNotFound)
				return
			}
			log.Error("failed to generate pdf", "op", op, "err", err)
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		writePDF(w, name, data)
	}
}

// GenerateReportPDFDirect renders a PDF straight from the posted payload,
// the one-shot path used before a report is ever saved.
func GenerateReportPDFDirect(log *slog.Logger, gen GeneratePDFHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate_pdf.GenerateReportPDFDirect"

		var req save.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Dados inválidos", http.StatusBadRequest)
			return
		}

		images, err := save.DecodeImages(req.Images)
		if err != nil {
			log.Error("imagem inválida", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Imagem inválida", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		data, name, err := gen.GenerateDirect(ctx, &req.ReportRecord, images)
		if err != nil {
			log.Error("failed to generate pdf", "op", op, "err", err)
			http.Error(w, "Relatório inválido: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writePDF(w, name, data)
	}
}
