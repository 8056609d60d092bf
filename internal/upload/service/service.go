package uploadservice

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"go.uber.org/zap"
)

// MaxPhotoSize caps inventory photo attachments at 5 MB.
const MaxPhotoSize = 5 << 20

type service struct {
	dir    string
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) *service {
	return &service{
		dir:    dir,
		logger: logger,
	}
}

// SavePhoto writes an uploaded image into the static upload directory
// under a fresh uuid filename and returns the relative path it will be
// served from.
func (s *service) SavePhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxPhotoSize {
		return "", apperror.NewAppError("photo exceeds the 5MB limit")
	}

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return "", apperror.NewAppError("only image files are allowed")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("error creating upload directory", zap.Error(err))
		return "", err
	}

	fileName := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(header.Filename))

	f, err := os.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		s.logger.Error("error creating upload file", zap.Error(err))
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, file); err != nil {
		s.logger.Error("error writing upload file", zap.Error(err))
		return "", err
	}

	s.logger.Info("saved photo", zap.String("file", fileName), zap.Int64("size", header.Size))

	return "/uploads/" + fileName, nil
}
