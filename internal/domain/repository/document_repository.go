package repository

import (
	"context"

	"homeops-service/internal/domain/entity"
)

// DocumentRepository defines the interface for the append-only ingested
// document archive.
type DocumentRepository interface {
	// InsertIfNew stores the document unless one with the same content hash
	// already exists. Returns false when the document was a duplicate.
	InsertIfNew(ctx context.Context, doc *entity.IngestedDocument) (bool, error)
	List(ctx context.Context, sourceType string, limit int) ([]entity.IngestedDocument, error)
}
