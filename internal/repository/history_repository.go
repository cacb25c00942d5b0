package repository

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"sync"
	"time"

	"github.com/nfnt/resize"

	"github.com/Pinank23/CODECRAFT-CS-02/internal/pixel"
)

// Preview dimensions for history thumbnails.
const (
	thumbnailWidth  = 300
	thumbnailHeight = 250
)

// InMemoryHistoryRepository implements HistoryRepository with a capped,
// mutex-guarded slice. Records are held newest first.
type InMemoryHistoryRepository struct {
	mu      sync.RWMutex
	records []OperationRecord
	limit   int
	nextID  uint64
}

// NewInMemoryHistoryRepository creates a history log holding at most limit
// records.
func NewInMemoryHistoryRepository(limit int) *InMemoryHistoryRepository {
	if limit < 1 {
		limit = 1
	}
	return &InMemoryHistoryRepository{limit: limit}
}

// Append stores a record. The snapshot is cloned so the stored record stays
// independent of whatever the caller does with its buffer afterwards.
func (r *InMemoryHistoryRepository) Append(ctx context.Context, record OperationRecord) (string, error) {
	if record.Snapshot == nil {
		return "", ErrNilSnapshot
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	record.ID = fmt.Sprintf("op-%d", r.nextID)
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	record.Snapshot = record.Snapshot.Clone()

	r.records = append([]OperationRecord{record}, r.records...)
	if len(r.records) > r.limit {
		r.records = r.records[:r.limit]
	}
	return record.ID, nil
}

// List returns copies of all records, newest first.
func (r *InMemoryHistoryRepository) List(ctx context.Context) ([]OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]OperationRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Get retrieves a record by ID.
func (r *InMemoryHistoryRepository) Get(ctx context.Context, id string) (OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return OperationRecord{}, ErrRecordNotFound
}

// Clear removes all records.
func (r *InMemoryHistoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = nil
	return nil
}

// Thumbnail renders a buffer as a PNG preview bounded by 300x250.
func Thumbnail(buf *pixel.Buffer) ([]byte, error) {
	if buf.Empty() {
		return nil, nil
	}

	small := resize.Thumbnail(thumbnailWidth, thumbnailHeight, buf.ToImage(), resize.Bilinear)

	var b bytes.Buffer
	if err := png.Encode(&b, small); err != nil {
		return nil, fmt.Errorf("thumbnail encode failed: %w", err)
	}
	return b.Bytes(), nil
}
