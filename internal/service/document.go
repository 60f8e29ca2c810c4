package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docuwareapi/internal/config"
	"docuwareapi/internal/model"
	"docuwareapi/internal/repository"
	"docuwareapi/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

var tracer = otel.Tracer("docuwareapi/internal/service")

// DocumentService is the document store the HTTP layer delegates to.
type DocumentService interface {
	// ListAllDocuments returns up to limit documents, newest first.
	// A limit of zero or less selects the configured default.
	ListAllDocuments(ctx context.Context, limit int) ([]model.Document, error)

	// UploadDocument streams the file to object storage and records its metadata.
	// If the metadata cannot be saved the object is removed again.
	UploadDocument(ctx context.Context, companyName, contactName string, date time.Time, file model.UploadFile) (*model.Document, error)

	// GetDocument returns a single document by its ID.
	GetDocument(ctx context.Context, id int64) (*model.Document, error)

	// OpenDocument returns the document and a reader over its content. The caller closes the reader.
	// The returned Size is the stored object's length.
	OpenDocument(ctx context.Context, id int64) (*model.Document, io.ReadCloser, error)

	// DeleteDocument removes a document from both storage and repository.
	DeleteDocument(ctx context.Context, id int64) error
}

type documentService struct {
	store        storage.Storage
	repo         repository.DocumentRepository
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// NewDocumentService constructs a DocumentService over object storage and a metadata repository.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, cfg config.DocumentsConfig) DocumentService {
	s := &documentService{
		store:        store,
		repo:         repo,
		defaultLimit: cfg.DefaultListLimit,
		maxLimit:     cfg.MaxListLimit,
		now:          time.Now,
	}
	if s.defaultLimit <= 0 {
		s.defaultLimit = defaultListLimit
	}
	if s.maxLimit <= 0 {
		s.maxLimit = maxListLimit
	}
	if s.defaultLimit > s.maxLimit {
		s.defaultLimit = s.maxLimit
	}
	return s
}

func (s *documentService) ListAllDocuments(ctx context.Context, limit int) ([]model.Document, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.ListAllDocuments")
	defer span.End()

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	span.SetAttributes(attribute.Int("documents.limit", limit))

	docs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fail(span, fmt.Errorf("list documents: %w", err))
	}
	span.SetAttributes(attribute.Int("documents.count", len(docs)))
	return docs, nil
}

func (s *documentService) UploadDocument(ctx context.Context, companyName, contactName string, date time.Time, file model.UploadFile) (*model.Document, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.UploadDocument", trace.WithAttributes(
		attribute.String("document.company", companyName),
		attribute.Int64("document.size", file.Size),
	))
	defer span.End()

	if file.Reader == nil {
		return nil, fail(span, ErrReaderNil)
	}

	now := s.now().UTC()
	if date.IsZero() {
		date = now
	}

	// Stored name is a fresh UUID; the original name survives only as its extension and in metadata.
	genName := uuid.NewString() + filepath.Ext(file.Filename)
	key := filepath.ToSlash(filepath.Join("documents", genName))

	objInfo, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata: map[string]string{
			"original-filename": file.Filename,
			"company-name":      companyName,
			"contact-name":      contactName,
		},
	})
	if err != nil {
		return nil, fail(span, fmt.Errorf("upload to storage: %w", err))
	}

	stored, err := s.repo.Create(ctx, &model.Document{
		CompanyName:  companyName,
		ContactName:  contactName,
		DocumentDate: date.UTC(),
		Filename:     file.Filename,
		StoragePath:  objInfo.Key,
		Size:         objInfo.Size,
		ContentType:  objInfo.ContentType,
		CreatedAt:    now,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fail(span, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr))
		}
		return nil, fail(span, fmt.Errorf("db save failed: %w", err))
	}

	span.SetAttributes(attribute.Int64("document.id", stored.ID))
	return stored, nil
}

func (s *documentService) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.GetDocument", trace.WithAttributes(attribute.Int64("document.id", id)))
	defer span.End()

	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}
	return doc, nil
}

func (s *documentService) OpenDocument(ctx context.Context, id int64) (*model.Document, io.ReadCloser, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.OpenDocument", trace.WithAttributes(attribute.Int64("document.id", id)))
	defer span.End()

	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, fail(span, err)
	}
	rc, info, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fail(span, fmt.Errorf("%w: content missing for %d", ErrNotFound, id))
		}
		return nil, nil, fail(span, fmt.Errorf("open storage: %w", err))
	}
	// The stream length must match what storage will actually send.
	doc.Size = info.Size
	return doc, rc, nil
}

// DeleteDocument removes the object first so a storage failure keeps the row pointing at it.
func (s *documentService) DeleteDocument(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "DocumentService.DeleteDocument", trace.WithAttributes(attribute.Int64("document.id", id)))
	defer span.End()

	doc, err := s.find(ctx, id)
	if err != nil {
		return fail(span, err)
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fail(span, fmt.Errorf("delete storage: %w", err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(span, err)
	}
	return nil
}

func (s *documentService) find(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
