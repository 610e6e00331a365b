package domain

import "github.com/google/uuid"

// FileEntry is an uploaded payload held in memory for the life of the process.
// Name comes from the uploader and is never used as a filesystem path.
type FileEntry struct {
	ID       uuid.UUID
	Name     string
	MimeType string
	Data     []byte
}

func (f *FileEntry) Size() int64 {
	return int64(len(f.Data))
}
