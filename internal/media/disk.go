package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoders for the formats guests send
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/snapgala/api/internal/model"
)

const (
	// thumbnailSize bounds the longest side of generated thumbnails
	thumbnailSize = 480

	// maxRemoteImageBytes caps remote fetches in UploadFromURL
	maxRemoteImageBytes = 20 << 20
)

// DiskStore stores images on the local filesystem and serves them under a
// public URL prefix. Each upload writes the original plus a thumbnail.
type DiskStore struct {
	baseDir      string
	publicPrefix string
	client       *http.Client
}

// DiskStoreConfig holds disk store settings
type DiskStoreConfig struct {
	BaseDir      string // Root directory for stored files
	PublicPrefix string // URL prefix the files are served under, e.g. "/media"
}

// NewDiskStore creates a disk-backed media store.
func NewDiskStore(cfg DiskStoreConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create base dir: %v", ErrUpload, err)
	}
	return &DiskStore{
		baseDir:      cfg.BaseDir,
		publicPrefix: strings.TrimSuffix(cfg.PublicPrefix, "/"),
		client:       &http.Client{},
	}, nil
}

// BaseDir returns the root directory files are written under.
func (s *DiskStore) BaseDir() string {
	return s.baseDir
}

// Upload decodes the image, writes the original and a thumbnail, and
// returns the reference to the original.
func (s *DiskStore) Upload(ctx context.Context, data []byte, folder string) (model.MediaRef, error) {
	if err := ctx.Err(); err != nil {
		return model.MediaRef{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return model.MediaRef{}, fmt.Errorf("%w: decode: %v", ErrUpload, err)
	}

	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.MediaRef{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	id := uuid.New().String()
	ext := extensionFor(format)
	name := id + ext

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return model.MediaRef{}, fmt.Errorf("%w: write: %v", ErrUpload, err)
	}

	// The original is already durable; a missing thumbnail only degrades
	// album rendering, so the upload still succeeds.
	_ = s.writeThumbnail(img, filepath.Join(dir, id+"_thumb.jpg"))

	return model.MediaRef{
		MediaID: id,
		URL:     s.publicPrefix + "/" + folder + "/" + name,
	}, nil
}

// UploadFromURL fetches a remote image and stores it like Upload.
func (s *DiskStore) UploadFromURL(ctx context.Context, rawURL, folder string) (model.MediaRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.MediaRef{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return model.MediaRef{}, fmt.Errorf("%w: fetch: %v", ErrUpload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.MediaRef{}, fmt.Errorf("%w: fetch: unexpected status %d", ErrUpload, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteImageBytes))
	if err != nil {
		return model.MediaRef{}, fmt.Errorf("%w: read: %v", ErrUpload, err)
	}

	return s.Upload(ctx, data, folder)
}

func (s *DiskStore) writeThumbnail(img image.Image, path string) error {
	thumb := resize.Thumbnail(thumbnailSize, thumbnailSize, img, resize.Lanczos3)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return jpeg.Encode(f, thumb, &jpeg.Options{Quality: 85})
}

func extensionFor(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
