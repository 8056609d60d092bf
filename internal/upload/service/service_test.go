package uploadservice

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func newUpload(name, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
		Size:     int64(len(content)),
	}

	return memoryFile{bytes.NewReader(content)}, header
}

func TestService_SavePhoto(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zap.NewNop())

	content := []byte("png bytes")
	file, header := newUpload("shelf.png", "image/png", content)

	path, err := s.SavePhoto(context.Background(), file, header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/"), path)
	assert.True(t, strings.HasSuffix(path, ".png"), path)

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestService_SavePhotoFreshNames(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zap.NewNop())

	file, header := newUpload("shelf.jpg", "image/jpeg", []byte("first"))
	first, err := s.SavePhoto(context.Background(), file, header)
	require.NoError(t, err)

	file, header = newUpload("shelf.jpg", "image/jpeg", []byte("second"))
	second, err := s.SavePhoto(context.Background(), file, header)
	require.NoError(t, err)

	// Same submitted filename must not overwrite the earlier photo.
	assert.NotEqual(t, first, second)
}

func TestService_SavePhotoRejectsOversize(t *testing.T) {
	s := New(t.TempDir(), zap.NewNop())

	file, header := newUpload("shelf.jpg", "image/jpeg", []byte("jpeg bytes"))
	header.Size = MaxPhotoSize + 1

	_, err := s.SavePhoto(context.Background(), file, header)
	assert.EqualError(t, err, "photo exceeds the 5MB limit")
}

func TestService_SavePhotoRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zap.NewNop())

	file, header := newUpload("notes.txt", "text/plain", []byte("not a photo"))

	_, err := s.SavePhoto(context.Background(), file, header)
	assert.EqualError(t, err, "only image files are allowed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
