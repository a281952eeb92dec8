// Package photostore provides storage for resident photos. It defines the
// PhotoStore interface, an in-memory implementation suitable for testing and
// development, and Echo HTTP handlers for multipart upload, download and
// deletion. Stored photos are addressed by a stable URL that resident records
// keep in photo_url.
package photostore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrMissingFileName    = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed photo size in bytes (10 MB).
const MaxFileSize = 10 * 1024 * 1024

// AllowedContentTypes lists accepted image MIME types.
var AllowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// PhotoMetadata describes a stored photo.
type PhotoMetadata struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	ResidentID  string    `json:"resident_id,omitempty"`
	Hash        string    `json:"hash"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}

// PhotoStore defines the contract for photo storage backends.
type PhotoStore interface {
	Upload(ctx context.Context, meta PhotoMetadata, content io.Reader) (*PhotoMetadata, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *PhotoMetadata, error)
	Delete(ctx context.Context, id string) error
	GetMetadata(ctx context.Context, id string) (*PhotoMetadata, error)
	ListByResident(ctx context.Context, residentID string) ([]*PhotoMetadata, error)
}

type storedPhoto struct {
	metadata PhotoMetadata
	content  []byte
}

// InMemoryPhotoStore is a thread-safe, in-memory PhotoStore for testing/dev.
type InMemoryPhotoStore struct {
	mu      sync.RWMutex
	photos  map[string]*storedPhoto
	baseURL string
}

// NewInMemoryPhotoStore returns a ready-to-use InMemoryPhotoStore. baseURL is
// the path prefix under which photos are served, e.g. "/api/v1/photos".
func NewInMemoryPhotoStore(baseURL string) *InMemoryPhotoStore {
	return &InMemoryPhotoStore{
		photos:  make(map[string]*storedPhoto),
		baseURL: baseURL,
	}
}

// Upload validates inputs, reads the content, computes a SHA-256 hash, and
// stores the photo in memory.
func (s *InMemoryPhotoStore) Upload(_ context.Context, meta PhotoMetadata, content io.Reader) (*PhotoMetadata, error) {
	if meta.FileName == "" {
		return nil, ErrMissingFileName
	}
	if !AllowedContentTypes[meta.ContentType] {
		return nil, ErrInvalidContentType
	}

	// Read content into memory so we can measure size and compute hash.
	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	h := sha256.Sum256(data)

	meta.ID = uuid.New().String()
	meta.Size = int64(len(data))
	meta.Hash = fmt.Sprintf("%x", h)
	meta.URL = s.baseURL + "/" + meta.ID
	meta.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.photos[meta.ID] = &storedPhoto{
		metadata: meta,
		content:  data,
	}
	s.mu.Unlock()

	out := meta // copy
	return &out, nil
}

// Download returns an io.ReadCloser over the photo content and its metadata.
func (s *InMemoryPhotoStore) Download(_ context.Context, id string) (io.ReadCloser, *PhotoMetadata, error) {
	s.mu.RLock()
	photo, ok := s.photos[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil, ErrPhotoNotFound
	}

	meta := photo.metadata // copy
	return io.NopCloser(bytes.NewReader(photo.content)), &meta, nil
}

// Delete removes a photo by ID.
func (s *InMemoryPhotoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.photos[id]; !ok {
		return ErrPhotoNotFound
	}
	delete(s.photos, id)
	return nil
}

// GetMetadata returns photo metadata without content.
func (s *InMemoryPhotoStore) GetMetadata(_ context.Context, id string) (*PhotoMetadata, error) {
	s.mu.RLock()
	photo, ok := s.photos[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrPhotoNotFound
	}

	meta := photo.metadata // copy
	return &meta, nil
}

// ListByResident returns all photos stored for a resident.
func (s *InMemoryPhotoStore) ListByResident(_ context.Context, residentID string) ([]*PhotoMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*PhotoMetadata
	for _, p := range s.photos {
		if p.metadata.ResidentID != residentID {
			continue
		}
		m := p.metadata // copy
		matched = append(matched, &m)
	}
	return matched, nil
}

// PhotoHandler provides Echo HTTP handlers for photo operations.
type PhotoHandler struct {
	store PhotoStore
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(store PhotoStore) *PhotoHandler {
	return &PhotoHandler{store: store}
}

// RegisterRoutes mounts photo routes on the supplied Echo group.
func (h *PhotoHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/photos/upload", h.handleUpload)
	g.GET("/photos/resident/:residentId", h.handleListByResident)
	g.GET("/photos/:id", h.handleDownload)
	g.DELETE("/photos/:id", h.handleDelete)
}

func (h *PhotoHandler) handleUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to open uploaded file"})
	}
	defer src.Close()

	meta := PhotoMetadata{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		ResidentID:  c.FormValue("resident_id"),
		CreatedBy:   c.FormValue("created_by"),
	}

	result, err := h.store.Upload(c.Request().Context(), meta, src)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrMissingFileName):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrInvalidContentType):
			return c.JSON(http.StatusUnsupportedMediaType, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *PhotoHandler) handleDownload(c echo.Context) error {
	id := c.Param("id")

	rc, meta, err := h.store.Download(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, meta.ContentType, rc)
}

func (h *PhotoHandler) handleDelete(c echo.Context) error {
	id := c.Param("id")

	err := h.store.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PhotoHandler) handleListByResident(c echo.Context) error {
	residentID := c.Param("residentId")

	items, err := h.store.ListByResident(c.Request().Context(), residentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if items == nil {
		items = []*PhotoMetadata{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"items": items, "total": len(items)})
}
