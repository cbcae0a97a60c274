package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// fileHeader builds a real *multipart.FileHeader by round-tripping a
// multipart body through http's form parser.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("upload", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["upload"][0]
}

func TestSaveUploadStoresFileWithTimestampedName(t *testing.T) {
	dir := t.TempDir()
	fh := fileHeader(t, "poster.jpeg", []byte("image bytes"))

	path, err := SaveUpload(fh, dir)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	base := filepath.Base(path)
	if ok, _ := regexp.MatchString(`^\d+-poster\.jpeg$`, base); !ok {
		t.Fatalf("expected <millis>-poster.jpeg, got %q", base)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "image bytes" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestSaveUploadRejectsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.gif", "b.exe", "c.png.txt", "noext"} {
		fh := fileHeader(t, name, []byte("x"))
		if _, err := SaveUpload(fh, dir); err != ErrBadExtension {
			t.Errorf("%s: expected ErrBadExtension, got %v", name, err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("rejected uploads must not hit disk, found %d files", len(entries))
	}
}

func TestSaveUploadAcceptsCaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A.JPG", "b.Jpeg", "c.PNG"} {
		fh := fileHeader(t, name, []byte("x"))
		if _, err := SaveUpload(fh, dir); err != nil {
			t.Errorf("%s: expected success, got %v", name, err)
		}
	}
}

func TestSaveUploadRejectsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	big := bytes.Repeat([]byte("a"), MaxUploadBytes+1)
	fh := fileHeader(t, "big.png", big)

	if _, err := SaveUpload(fh, dir); err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("oversized upload must not stay on disk, found %d files", len(entries))
	}
}

func TestSaveUploadPathUsesForwardSlashes(t *testing.T) {
	dir := t.TempDir()
	fh := fileHeader(t, "x.png", []byte("x"))
	path, err := SaveUpload(fh, dir)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(path, "\\") {
		t.Fatalf("expected forward-slash path, got %q", path)
	}
}
