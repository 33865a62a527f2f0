package storage

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"inkwell/app/errs"
)

// PublicPrefix is the URL path under which stored images are served.
const PublicPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ImageStore persists uploaded post images under a public-servable
// directory and hands back the reference path stored on the post.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the directory images are written to.
func (s *ImageStore) Dir() string { return s.dir }

// Save writes the upload to disk under a timestamped name and returns
// its public path. Only JPEG and PNG content is accepted; both the
// original extension and the sniffed content type must agree.
func (s *ImageStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", errs.Validation("invalid image",
			errs.FieldError{Field: "image", Message: "only JPEG and PNG images are allowed"})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", errs.Internal(err)
	}
	if !allowedContentTypes[http.DetectContentType(data)] {
		return "", errs.Validation("invalid image",
			errs.FieldError{Field: "image", Message: "only JPEG and PNG images are allowed"})
	}

	name := strconv.FormatInt(time.Now().UnixNano(), 10) + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", errs.Internal(err)
	}
	return path.Join(PublicPrefix, name), nil
}
