package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docuwareapi/internal/http/middleware"
	"docuwareapi/internal/model"
	"docuwareapi/internal/service"
)

// UploadSuccessMessage is the confirmation returned after a successful upload.
const UploadSuccessMessage = "Document uploaded successfully"

const defaultContentType = "application/octet-stream"

// ListDocuments returns stored documents.
//
// An empty result is answered with 404. Any store failure is answered with 500
// carrying the failure message.
//
// @Summary  List documents
// @Tags     documents
// @Produce  json
// @Param    limit query int false "Maximum number of documents"
// @Success  200 {array}  model.Document
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /documents [get]
func ListDocuments(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
			}
			limit = n
		}

		docs, err := docSvc.ListAllDocuments(c.UserContext(), limit)
		if err != nil {
			log.Error("list documents failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Int("limit", limit),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		if len(docs) == 0 {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no documents found")
		}
		return c.JSON(docs)
	}
}

// UploadDocument stores a file sent as multipart/form-data.
//
// The file must be present and non-empty; otherwise the store is not called.
//
// @Summary  Upload a document
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    companyName formData string false "Company name"
// @Param    contactName formData string false "Contact name"
// @Param    date        formData string false "Document date (RFC3339 or YYYY-MM-DD)"
// @Param    file        formData file   true  "Document file"
// @Success  200 {object} model.UploadDocumentResponse
// @Failure  400 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /documents [post]
func UploadDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil || fh.Size <= 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required and must not be empty")
		}

		date, err := parseDocumentDate(c.FormValue("date"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "date must be RFC3339 or YYYY-MM-DD")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = defaultContentType
		}

		doc, err := docSvc.UploadDocument(c.UserContext(),
			c.FormValue("companyName"),
			c.FormValue("contactName"),
			date,
			model.UploadFile{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
			},
		)
		if err != nil {
			log.Error("upload document failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("filename", fh.Filename),
				zap.Int64("size", fh.Size),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}

		return c.Status(fiber.StatusOK).JSON(model.UploadDocumentResponse{
			Message:    UploadSuccessMessage,
			DocumentID: doc.ID,
		})
	}
}

// GetDocument returns a single document record.
//
// @Summary  Get a document
// @Tags     documents
// @Produce  json
// @Param    id path int true "Document ID"
// @Success  200 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /documents/{id} [get]
func GetDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.GetDocument(c.UserContext(), id)
		if err != nil {
			return lookupError(c, log, "get document failed", id, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument streams the stored file content.
//
// @Summary  Download document content
// @Tags     documents
// @Produce  octet-stream
// @Param    id path int true "Document ID"
// @Success  200 {file} file
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /documents/{id}/content [get]
func DownloadDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, rc, err := docSvc.OpenDocument(c.UserContext(), id)
		if err != nil {
			return lookupError(c, log, "download document failed", id, err)
		}

		c.Attachment(doc.Filename)
		if doc.ContentType != "" {
			c.Set(fiber.HeaderContentType, doc.ContentType)
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(doc.Size))
	}
}

// DeleteDocument removes a document and its content.
//
// @Summary  Delete a document
// @Tags     documents
// @Param    id path int true "Document ID"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.DeleteDocument(c.UserContext(), id); err != nil {
			return lookupError(c, log, "delete document failed", id, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func lookupError(c *fiber.Ctx, log *zap.Logger, msg string, id int64, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	}
	log.Error(msg,
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Int64("document_id", id),
		zap.Error(err),
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

// parseDocumentDate accepts RFC3339 timestamps or plain dates. Empty input yields the zero time.
func parseDocumentDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
