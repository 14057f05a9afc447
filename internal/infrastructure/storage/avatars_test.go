package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadHeader(t *testing.T, filename, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="avatar"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("PUT", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["avatar"][0]
}

func TestAvatarStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAvatarStore(dir)
	if err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}

	fh := uploadHeader(t, "me.PNG", "image/png", []byte("fake png bytes"))
	urlPath, err := store.Save(fh)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if !strings.HasPrefix(urlPath, URLPrefix+"/avatar-") {
		t.Fatalf("unexpected url path: %q", urlPath)
	}
	if !strings.HasSuffix(urlPath, ".png") {
		t.Fatalf("extension not lowercased: %q", urlPath)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(urlPath, URLPrefix+"/")))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Fatalf("stored content mismatch")
	}
}

func TestAvatarStore_Save_UniqueNames(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}

	first, err := store.Save(uploadHeader(t, "a.png", "image/png", []byte("one")))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := store.Save(uploadHeader(t, "a.png", "image/png", []byte("two")))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct file names, both were %q", first)
	}
}

func TestAvatarStore_Save_RejectsNonImage(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}

	_, err = store.Save(uploadHeader(t, "notes.txt", "text/plain", []byte("hello")))
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestAvatarStore_Save_RejectsOversized(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}

	fh := uploadHeader(t, "big.png", "image/png", []byte("x"))
	fh.Size = maxAvatarBytes + 1

	if _, err := store.Save(fh); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
