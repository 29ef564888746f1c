package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"pronav-backend/internal/storage"
)

type AdminReportProvider interface {
	GetAllReports(ctx context.Context) ([]*storage.ReportSummary, error)
}

// GetAllReportsAdmin lists every report regardless of owner. Mounted behind
// basic auth.
func GetAllReportsAdmin(log *slog.Logger, res AdminReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetAllReportsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		reports, err := res.GetAllReports(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("erro ao listar relatórios")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if reports == nil {
			reports = []*storage.ReportSummary{}
		}

		render.JSON(w, r, reports)
	}
}
