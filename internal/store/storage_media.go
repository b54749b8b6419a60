package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/models"
)

// mediaFileStorage keeps uploads on the local filesystem under
// cfg.UploadDir, laid out as <kind>/<userID>/<unixnano>_<uuid><ext>, and
// serves them under cfg.PublicPath.
type mediaFileStorage struct {
	root       string
	publicPath string
	now        func() time.Time
	logger     *logger.Logger
}

// NewMediaFileStorage creates the upload directory if needed and returns a
// [MediaStorage] writing into it.
func NewMediaFileStorage(cfg config.Files, log *logger.Logger) (MediaStorage, error) {
	root, err := filepath.Abs(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("resolving upload dir: %w", err)
	}
	if err = os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	log.Debug().Str("root", root).Msg("creating media file storage")
	return &mediaFileStorage{
		root:       root,
		publicPath: "/" + strings.Trim(cfg.PublicPath, "/"),
		now:        time.Now,
		logger:     log,
	}, nil
}

// sniffLen is the number of leading bytes http.DetectContentType considers.
const sniffLen = 512

// mediaTypes lists the formats accepted per kind and the extension an object
// of that format is stored with. The extension decides the Content-Type the
// file is served with, so it never comes from the client.
var mediaTypes = map[models.MediaKind]map[string]string{
	models.MediaVideo: {
		"video/mp4":  ".mp4",
		"video/webm": ".webm",
		"video/avi":  ".avi",
	},
	models.MediaThumbnail: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	},
}

// Save streams upload.Body into a new object and returns its public URL.
// The format is sniffed from the content; the declared file name and content
// type are ignored. A partially written object is removed on failure.
func (s *mediaFileStorage) Save(ctx context.Context, userID int64, upload models.MediaUpload) (string, error) {
	log := logger.FromContext(ctx)

	allowed, ok := mediaTypes[upload.Kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown media kind %q", ErrInvalidMediaPath, upload.Kind)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(&ctxReader{ctx: ctx, r: upload.Body}, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*mediaFileStorage.Save").Msg("error reading media header")
		return "", fmt.Errorf("reading media file: %w", err)
	}
	head = head[:n]

	detected := http.DetectContentType(head)
	ext, ok := allowed[detected]
	if !ok {
		log.Warn().Str("kind", string(upload.Kind)).Str("detected", detected).
			Str("declared", upload.ContentType).Msg("rejected media upload")
		return "", fmt.Errorf("%w: %s upload detected as %s", ErrUnsupportedMediaType, upload.Kind, detected)
	}

	name := fmt.Sprintf("%d_%s%s", s.now().UnixNano(), uuid.NewString(), ext)
	objectPath := path.Join(string(upload.Kind), strconv.FormatInt(userID, 10), name)
	fullPath := filepath.Join(s.root, filepath.FromSlash(objectPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		log.Err(err).Str("func", "*mediaFileStorage.Save").Msg("error creating media directory")
		return "", fmt.Errorf("creating media directory: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		log.Err(err).Str("func", "*mediaFileStorage.Save").Msg("error creating media file")
		return "", fmt.Errorf("creating media file: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), upload.Body)
	_, err = io.Copy(f, &ctxReader{ctx: ctx, r: body})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		log.Err(err).Str("func", "*mediaFileStorage.Save").Msg("error writing media file")
		return "", fmt.Errorf("writing media file: %w", err)
	}

	return s.publicPath + "/" + objectPath, nil
}

// Delete removes the object behind url.
func (s *mediaFileStorage) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	objectPath, err := s.objectPath(url)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(objectPath)))
	if err != nil && !os.IsNotExist(err) {
		logger.FromContext(ctx).Err(err).Str("func", "*mediaFileStorage.Delete").Msg("error removing media file")
		return fmt.Errorf("removing media file: %w", err)
	}
	return nil
}

// objectPath resolves a public URL to a path relative to the root,
// rejecting anything outside it.
func (s *mediaFileStorage) objectPath(url string) (string, error) {
	rel, ok := strings.CutPrefix(url, s.publicPath+"/")
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidMediaPath, url)
	}

	cleaned := path.Clean("/" + rel)[1:]
	if cleaned == "" || cleaned != rel || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidMediaPath, url)
	}
	return cleaned, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
