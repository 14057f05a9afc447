// Package storage implements the avatar file store. Every write targets a
// uniquely named file, so concurrent uploads need no locking.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// URLPrefix is where uploaded avatars are served from.
	URLPrefix = "/uploads"

	maxAvatarBytes = 5 << 20 // 5 MiB
)

var (
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("avatar exceeds the 5 MiB limit")
)

// AvatarStore writes uploaded avatar images to a local directory.
type AvatarStore struct {
	dir string
}

func NewAvatarStore(dir string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &AvatarStore{dir: dir}, nil
}

// Dir returns the directory avatars are written to, for static serving.
func (s *AvatarStore) Dir() string {
	return s.dir
}

// Save persists the uploaded file and returns its public URL path.
func (s *AvatarStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxAvatarBytes {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", ErrNotImage
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("avatar-%d-%s%s",
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
		strings.ToLower(filepath.Ext(fh.Filename)),
	)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, maxAvatarBytes)); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return URLPrefix + "/" + name, nil
}
