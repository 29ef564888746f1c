package delete_report

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

type ReportDeleter interface {
	DeleteReport(ctx context.Context, id int64, userID string) error
}

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func DeleteReport(log *slog.Logger, res ReportDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.delete.DeleteReport"

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

		if err := res.DeleteReport(ctx, id, userID); err != nil {
			if errors.Is(err, storage.ErrReportNotFound) {
				http.Error(w, "Relatório não encontrado", http.StatusNotFound)
				return
			}
			log.Error("erro ao excluir relatório", slog.String("op", op), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível excluir o relatório"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}
