// Package media turns uploaded images into stored avatar thumbnails.
package media

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
)

// DefaultAvatarSize is the edge length used when the config leaves it zero.
const DefaultAvatarSize = 256

// ErrUnsupportedImage is returned for uploads that are not jpeg, png or gif images.
var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedTypes = map[string]bool{ //nolint:gochecknoglobals
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Thumbnail decodes an image and returns a square JPEG of size x size, cropped at the center.
func Thumbnail(data []byte, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultAvatarSize
	}

	if !allowedTypes[http.DetectContentType(data)] {
		return nil, ErrUnsupportedImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedImage, err.Error())
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, errors.Wrap(err, "encode thumbnail")
	}

	return buf.Bytes(), nil
}

// Store writes avatars below the upload directory.
type Store struct {
	dir  string
	size int
}

// NewStore creates a store for the upload settings.
func NewStore(cfg config.Upload) *Store {
	return &Store{dir: cfg.Dir, size: cfg.AvatarSize}
}

// SaveAvatar reads the upload, writes the thumbnail as avatars/<uuid>.jpg and returns that relative path.
func (s *Store) SaveAvatar(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "read upload")
	}

	thumb, err := Thumbnail(data, s.size)
	if err != nil {
		return "", err
	}

	rel := filepath.Join("avatars", uuid.NewString()+".jpg")
	full := filepath.Join(s.dir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil { //nolint:gosec
		return "", errors.Wrap(err, "create avatar directory")
	}

	if err := os.WriteFile(full, thumb, 0o644); err != nil { //nolint:gosec
		return "", errors.Wrap(err, "write avatar")
	}

	return filepath.ToSlash(rel), nil
}

// Path returns the absolute location of a path returned by SaveAvatar.
func (s *Store) Path(rel string) string {
	return filepath.Join(s.dir, filepath.FromSlash(rel))
}

// Remove deletes a stored avatar. A missing file is not an error.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}

	if err := os.Remove(s.Path(rel)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "remove avatar")
	}

	return nil
}
