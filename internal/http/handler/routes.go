package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docuwareapi/internal/service"
)

// RegisterRoutes attaches health and document routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, log *zap.Logger) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(docSvc, log))
	app.Post("/documents", UploadDocument(docSvc, log))
	app.Get("/documents/:id", GetDocument(docSvc, log))
	app.Get("/documents/:id/content", DownloadDocument(docSvc, log))
	app.Delete("/documents/:id", DeleteDocument(docSvc, log))
}
