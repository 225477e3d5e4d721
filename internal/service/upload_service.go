package service

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/dto"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// MaxImageSize bounds profile image uploads.
const MaxImageSize = 5 << 20

// ObjectStore is the subset of the object storage client uploads need.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// UploadService stores profile images; the returned URL goes into the
// img field of teachers and students.
type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadService struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewUploadService creates an UploadService. store may be nil when object
// storage is not configured.
func NewUploadService(store ObjectStore, logger *zap.Logger) UploadService {
	return &uploadService{store: store, logger: logger}
}

func (s *uploadService) UploadImage(ctx context.Context, fh *multipart.FileHeader) (*dto.UploadResponse, error) {
	if s.store == nil {
		return nil, pkgerrors.Unavailable("File storage is not configured")
	}
	if fh.Size <= 0 {
		return nil, pkgerrors.Validation("File is empty")
	}
	if fh.Size > MaxImageSize {
		return nil, pkgerrors.Validation("File exceeds the 5MB limit")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, pkgerrors.Validation("Invalid file")
	}
	defer f.Close()

	// sniff the real type instead of trusting the client header
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, pkgerrors.Validation("Invalid file")
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return nil, pkgerrors.Validation("Only image files are allowed")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, pkgerrors.Internal("Failed to upload file", err)
	}

	key := "images/" + time.Now().UTC().Format("2006/01/") + uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))
	url, err := s.store.Put(ctx, key, f, fh.Size, contentType)
	if err != nil {
		s.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		return nil, pkgerrors.Internal("Failed to upload file", err)
	}

	s.logger.Info("image uploaded", zap.String("key", key), zap.Int64("size", fh.Size))
	return &dto.UploadResponse{Key: key, URL: url, Size: fh.Size, ContentType: contentType}, nil
}
