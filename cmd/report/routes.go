package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getadmin "pronav-backend/http-server/admin/get"
	generate_excel "pronav-backend/http-server/generate-report/generate-excel"
	generate_pdf "pronav-backend/http-server/generate-report/generate-pdf"
	delete_report "pronav-backend/http-server/report/delete"
	"pronav-backend/http-server/report/get"
	"pronav-backend/http-server/report/save"
	"pronav-backend/http-server/report/update"
	"pronav-backend/internal/config"
	"pronav-backend/internal/middleware/auth"
	generate_excel2 "pronav-backend/internal/service/generate-excel"
	generate_pdf2 "pronav-backend/internal/service/generate-pdf"
	"pronav-backend/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage,
	pdfService *generate_pdf2.GeneratePDFService, excelService *generate_excel2.GenerateExcelService) *chi.Mux {

	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// rascunhos de relatório
	router.Post("/api/relatorios", save.SaveReport(log, storage))
	router.Get("/api/relatorios", get.GetReports(log, storage))
	router.Get("/api/relatorios/{id}", get.GetReport(log, storage))
	router.Put("/api/relatorios/{id}", update.UpdateReport(log, storage))
	router.Delete("/api/relatorios/{id}", delete_report.DeleteReport(log, storage))

	// geração de documentos
	router.Post("/api/gerar", generate_pdf.GenerateReportPDFDirect(log, pdfService))
	router.Get("/api/relatorios/{id}/pdf", generate_pdf.GenerateReportPDF(log, pdfService))
	router.Get("/api/relatorios/{id}/excel", generate_excel.GenerateReportExcel(log, excelService))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Get("/relatorios", getadmin.GetAllReportsAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
