package repository

import (
	"context"
	"time"

	"github.com/Pinank23/CODECRAFT-CS-02/internal/pixel"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/models"
)

// OperationRecord is one entry in the append-only operation log. Snapshot
// is an owned copy of the result buffer; nothing else aliases it.
type OperationRecord struct {
	ID           string
	Timestamp    time.Time
	Label        string
	Method       models.Method
	Key          int
	Snapshot     *pixel.Buffer
	ThumbnailPNG []byte
}

// HistoryRepository stores operation records, newest first, with a bounded
// length: appending beyond the cap evicts the oldest record.
type HistoryRepository interface {
	// Append stores a record and returns its assigned ID.
	Append(ctx context.Context, record OperationRecord) (string, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]OperationRecord, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (OperationRecord, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
