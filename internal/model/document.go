package model

import "time"

// Document is the metadata record of a stored file.
// ID is assigned by the store when the record is created and is never set by callers.
type Document struct {
	ID           int64     `json:"id"`
	CompanyName  string    `json:"company_name"`
	ContactName  string    `json:"contact_name"`
	DocumentDate time.Time `json:"document_date"`
	Filename     string    `json:"filename"`
	StoragePath  string    `json:"storage_path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
}
