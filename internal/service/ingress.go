package service

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"lan_relay/internal/domain"
	"lan_relay/internal/repository"
	"lan_relay/pkg/errors"
	"lan_relay/pkg/logger"
)

// IngressService turns inbound chat sends and uploads into session messages.
type IngressService interface {
	// SubmitText accepts any content, empty strings included.
	SubmitText(content string) (domain.Message, error)
	SubmitUpload(filename, mimeType string, data []byte) (uuid.UUID, error)
	MaxUploadSize() int64
}

type ingressService struct {
	session       SessionService
	files         repository.FileRepository
	maxUploadSize int64
	log           logger.Logger
}

func NewIngressService(session SessionService, files repository.FileRepository, maxUploadSize int64, log logger.Logger) IngressService {
	return &ingressService{
		session:       session,
		files:         files,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (s *ingressService) SubmitText(content string) (domain.Message, error) {
	msg := domain.NewTextMessage(content)
	if err := s.session.Publish(msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (s *ingressService) SubmitUpload(filename, mimeType string, data []byte) (uuid.UUID, error) {
	if data == nil {
		return uuid.Nil, errors.ErrNoFilePart
	}
	if filename == "" {
		return uuid.Nil, errors.ErrNoSelectedFile
	}
	if int64(len(data)) > s.maxUploadSize {
		return uuid.Nil, fmt.Errorf("%w: %d bytes, limit %d", errors.ErrPayloadTooLarge, len(data), s.maxUploadSize)
	}

	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}

	fileID, err := s.files.Store(filename, mimeType, data)
	if err != nil {
		return uuid.Nil, err
	}

	msg, err := domain.NewFileMessage(filename, fileID, int64(len(data)))
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.session.Publish(msg); err != nil {
		return uuid.Nil, err
	}

	s.log.Info("File uploaded", "file_id", fileID, "size", len(data), "mime_type", mimeType)
	return fileID, nil
}

func (s *ingressService) MaxUploadSize() int64 {
	return s.maxUploadSize
}

// FileService serves stored uploads back to peers.
type FileService interface {
	Get(id string) (*domain.FileEntry, error)
	Stats() repository.FileStats
}

type fileService struct {
	files repository.FileRepository
}

func NewFileService(files repository.FileRepository) FileService {
	return &fileService{files: files}
}

// Get returns errors.ErrFileNotFound for malformed as well as unknown ids.
func (s *fileService) Get(id string) (*domain.FileEntry, error) {
	fileID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrFileNotFound
	}
	return s.files.Retrieve(fileID)
}

func (s *fileService) Stats() repository.FileStats {
	return s.files.Stats()
}
