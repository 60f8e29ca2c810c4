package postgres

import (
	"context"
	"database/sql"

	"docuwareapi/internal/model"
	"docuwareapi/internal/repository"
)

const documentColumns = `id, company_name, contact_name, document_date, filename, storage_path, size, content_type, created_at`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (model.Document, error) {
	var d model.Document
	err := s.Scan(
		&d.ID,
		&d.CompanyName,
		&d.ContactName,
		&d.DocumentDate,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.CreatedAt,
	)
	return d, err
}

// Create inserts a new document row; the identity column supplies the ID.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (company_name, contact_name, document_date, filename, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.CompanyName,
		doc.ContactName,
		doc.DocumentDate,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.CreatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns up to limit documents ordered newest first.
func (r *DocumentPostgres) List(ctx context.Context, limit int) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a document by ID. A missing row is not an error.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
