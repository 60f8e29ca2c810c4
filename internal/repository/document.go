package repository

import (
	"context"

	"docuwareapi/internal/model"
)

// DocumentRepository persists document metadata. It holds no business logic.
type DocumentRepository interface {
	// Create inserts a record and returns it as stored, including the ID the database assigned.
	// Any ID set on doc is ignored.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns at most limit documents, newest first.
	List(ctx context.Context, limit int) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id int64) error
}
