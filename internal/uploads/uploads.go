// Package uploads validates and stores multipart file uploads for the media
// registry and the prize-claim document fields.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 10 << 20 // 10 MB

var (
	ErrTooLarge = errors.New("file exceeds the 10 MB limit")
	ErrBadType  = errors.New("file type must be PDF, JPEG, or PNG")
)

// allowedExtensions maps accepted sniffed content types to stored extensions.
var allowedExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// SavedFile describes a stored upload.
type SavedFile struct {
	Filename    string // stored name on disk
	Original    string // client-supplied name
	URL         string // public URL path
	ContentType string
	Size        int64
}

// Store writes uploads to a directory and serves them under a URL prefix.
type Store struct {
	dir     string
	baseURL string
}

// New creates the upload directory if needed.
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, baseURL: baseURL}, nil
}

// Validate checks the size and sniffed content type of an upload without
// storing it. The content type comes from the file bytes, not the client
// header, so a renamed .docx is still rejected.
func Validate(fh *multipart.FileHeader) (contentType string, err error) {
	if fh.Size > MaxFileSize {
		return "", ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}

	contentType = http.DetectContentType(buf[:n])
	if _, ok := allowedExtensions[contentType]; !ok {
		return "", ErrBadType
	}
	return contentType, nil
}

// Save validates and writes an upload to disk under a random name.
func (s *Store) Save(fh *multipart.FileHeader) (*SavedFile, error) {
	contentType, err := Validate(fh)
	if err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	name := uuid.New().String() + allowedExtensions[contentType]
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(f, MaxFileSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(path)
		return nil, ErrTooLarge
	}

	return &SavedFile{
		Filename:    name,
		Original:    fh.Filename,
		URL:         s.baseURL + "/" + name,
		ContentType: contentType,
		Size:        written,
	}, nil
}

// Remove deletes a stored file by name. Missing files are not an error.
func (s *Store) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the storage directory, for serving with http.FileServer.
func (s *Store) Dir() string {
	return s.dir
}
