package repository

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"lan_relay/internal/domain"
	"lan_relay/pkg/errors"
	"lan_relay/pkg/logger"
)

// FileRepository keeps uploaded payloads in memory. Entries are never evicted;
// they live until the process exits.
type FileRepository interface {
	Store(name, mimeType string, data []byte) (uuid.UUID, error)
	Retrieve(id uuid.UUID) (*domain.FileEntry, error)
	Stats() FileStats
}

type FileStats struct {
	Count int   `json:"count"`
	Bytes int64 `json:"bytes"`
}

type fileRepository struct {
	mu    sync.RWMutex
	files map[uuid.UUID]*domain.FileEntry
	bytes int64
	log   logger.Logger
}

func NewFileRepository(log logger.Logger) FileRepository {
	return &fileRepository{
		files: make(map[uuid.UUID]*domain.FileEntry),
		log:   log,
	}
}

func (r *fileRepository) Store(name, mimeType string, data []byte) (uuid.UUID, error) {
	entry := &domain.FileEntry{
		ID:       uuid.New(),
		Name:     name,
		MimeType: mimeType,
		Data:     data,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[entry.ID]; exists {
		return uuid.Nil, fmt.Errorf("file id collision: %s", entry.ID)
	}
	r.files[entry.ID] = entry
	r.bytes += entry.Size()

	r.log.Debug("File stored", "file_id", entry.ID, "size", entry.Size())
	return entry.ID, nil
}

// Retrieve returns errors.ErrFileNotFound for ids that were never issued.
func (r *fileRepository) Retrieve(id uuid.UUID) (*domain.FileEntry, error) {
	r.mu.RLock()
	entry, ok := r.files[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.ErrFileNotFound
	}
	return entry, nil
}

func (r *fileRepository) Stats() FileStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return FileStats{Count: len(r.files), Bytes: r.bytes}
}
