package model

import "io"

// UploadFile is a file payload received from a client.
type UploadFile struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UploadDocumentResponse is returned after a document has been stored.
type UploadDocumentResponse struct {
	Message    string `json:"message"`
	DocumentID int64  `json:"documentId"`
}
