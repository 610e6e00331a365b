package handler

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"lan_relay/internal/service"
	"lan_relay/pkg/errors"
	"lan_relay/pkg/logger"
)

// multipartOverhead is the slack allowed on top of the payload ceiling for
// multipart boundaries and part headers.
const multipartOverhead = 64 << 10

const uploadField = "file"

type FileHandler struct {
	ingress service.IngressService
	files   service.FileService
	log     logger.Logger
}

func NewFileHandler(ingress service.IngressService, files service.FileService, log logger.Logger) *FileHandler {
	return &FileHandler{
		ingress: ingress,
		files:   files,
		log:     log,
	}
}

type UploadResponse struct {
	Success bool   `json:"success"`
	FileID  string `json:"file_id"`
}

// Upload handles POST /upload.
func (h *FileHandler) Upload(c *gin.Context) {
	limit := h.ingress.MaxUploadSize()
	if c.Request.ContentLength > limit+multipartOverhead {
		_ = c.Error(errors.ErrPayloadTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	header, err := c.FormFile(uploadField)
	if err != nil {
		_ = c.Error(h.formFileError(c, err))
		return
	}
	if header.Size > limit {
		_ = c.Error(errors.ErrPayloadTooLarge)
		return
	}

	src, err := header.Open()
	if err != nil {
		h.log.Error("Failed to open upload", "error", err)
		_ = c.Error(errors.ErrInternalServer)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		h.log.Error("Failed to read upload", "error", err)
		_ = c.Error(errors.ErrInternalServer)
		return
	}
	if data == nil {
		data = []byte{}
	}

	fileID, err := h.ingress.SubmitUpload(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{Success: true, FileID: fileID.String()})
}

// formFileError classifies a failed multipart lookup. A part named "file" with
// an empty filename is parsed as a plain form value, which means the user
// submitted the form without choosing a file.
func (h *FileHandler) formFileError(c *gin.Context, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errors.ErrPayloadTooLarge
	}
	if form := c.Request.MultipartForm; form != nil {
		if _, ok := form.Value[uploadField]; ok {
			return errors.ErrNoSelectedFile
		}
	}
	return errors.ErrNoFilePart
}

// Download handles GET /download/:id.
func (h *FileHandler) Download(c *gin.Context) {
	entry, err := h.files.Get(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": entry.Name}))
	c.Data(http.StatusOK, entry.MimeType, entry.Data)
}
