package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pronav-backend/http-server/report/save"
	"pronav-backend/internal/storage"
)

type ReportUpdater interface {
	UpdateReport(ctx context.Context, rep *storage.ReportRecord) error
	ReplaceImages(ctx context.Context, reportID int64, images []storage.ImageEntry) error
}

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func UpdateReport(log *slog.Logger, res ReportUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.update.UpdateReport"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "ID inválido", http.StatusBadRequest)
			return
		}

		var req save.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Dados inválidos", http.StatusBadRequest)
			return
		}
		req.ReportRecord.ID = id

		if err := req.ReportRecord.Validate(); err != nil {
			log.Error("relatório inválido", slog.String("op", op), slog.String("error", err.Error()))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		images, err := save.DecodeImages(req.Images)
		if err != nil {
			log.Error("imagem inválida", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Imagem inválida", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		if err := res.UpdateReport(ctx, &req.ReportRecord); err != nil {
			if errors.Is(err, storage.ErrReportNotFound) {
				http.Error(w, "Relatório não encontrado", http.StatusNotFound)
				return
			}
			log.Error("erro ao atualizar relatório", slog.String("op", op), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível atualizar o relatório"})
			return
		}

		if req.Images != nil {
			if err := res.ReplaceImages(ctx, id, images); err != nil {
				log.Error("erro ao atualizar imagens", slog.String("op", op), slog.String("error", err.Error()))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, Response{Error: "não foi possível atualizar as imagens"})
				return
			}
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}
