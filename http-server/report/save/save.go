package save

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"pronav-backend/internal/storage"
)

// maxImageBytes caps a single decoded photo; payloads above it are rejected
// before anything touches the database.
const maxImageBytes = 10 << 20

type ReportSaver interface {
	SaveReport(ctx context.Context, rep *storage.ReportRecord) (int64, error)
	ReplaceImages(ctx context.Context, reportID int64, images []storage.ImageEntry) error
}

type ImagePayload struct {
	Content string `json:"conteudo"`
	Caption string `json:"legenda"`
}

type Request struct {
	storage.ReportRecord
	Images []ImagePayload `json:"IMAGENS,omitempty"`
}

type Response struct {
	ReportID int64  `json:"report_id"`
	Status   string `json:"status"`
	Error    string `json:"error"`
}

// DecodeImages turns base64 payload photos into storage entries, enforcing
// the per-image size cap.
func DecodeImages(payload []ImagePayload) ([]storage.ImageEntry, error) {
	images := make([]storage.ImageEntry, 0, len(payload))
	for _, p := range payload {
		raw, err := base64.StdEncoding.DecodeString(p.Content)
		if err != nil {
			return nil, err
		}
		if len(raw) > maxImageBytes {
			return nil, errImageTooLarge
		}
		images = append(images, storage.ImageEntry{Bytes: raw, Caption: p.Caption})
	}
	return images, nil
}

var errImageTooLarge = errors.New("imagem excede o tamanho máximo")

func SaveReport(log *slog.Logger, res ReportSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.save.SaveReport"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Dados inválidos", http.StatusBadRequest)
			return
		}

		if err := req.ReportRecord.Validate(); err != nil {
			log.Error("relatório inválido", slog.String("op", op), slog.String("error", err.Error()))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		images, err := DecodeImages(req.Images)
		if err != nil {
			log.Error("imagem inválida", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Imagem inválida", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		reportID, err := res.SaveReport(ctx, &req.ReportRecord)
		if err != nil {
			log.Error("erro ao salvar relatório", slog.String("op", op), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível salvar o relatório"})
			return
		}

		if len(images) > 0 {
			if err := res.ReplaceImages(ctx, reportID, images); err != nil {
				log.Error("erro ao salvar imagens", slog.String("op", op), slog.String("error", err.Error()))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, Response{ReportID: reportID, Error: "não foi possível salvar as imagens"})
				return
			}
		}

		render.JSON(w, r, Response{
			ReportID: reportID,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
