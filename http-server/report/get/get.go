package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pronav-backend/internal/storage"
)

type ReportGetter interface {
	GetReport(ctx context.Context, id int64, userID string) (*storage.ReportRecord, error)
	GetReportsByUser(ctx context.Context, userID string) ([]*storage.ReportSummary, error)
}

func GetReport(log *slog.Logger, res ReportGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.get.GetReport"

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

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rep, err := res.GetReport(ctx, id, userID)
		if err != nil {
			if errors.Is(err, storage.ErrReportNotFound) {
				http.Error(w, "Relatório não encontrado", http.StatusNotFound)
				return
			}
			log.Error("erro ao buscar relatório", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, rep)
	}
}

func GetReports(log *slog.Logger, res ReportGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.get.GetReports"

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "user_id obrigatório", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		reports, err := res.GetReportsByUser(ctx, userID)
		if err != nil {
			log.Error("erro ao listar relatórios", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}
		if reports == nil {
			reports = []*storage.ReportSummary{}
		}

		render.JSON(w, r, reports)
	}
}
