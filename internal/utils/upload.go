package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadBytes is the upload size cap. Larger files are rejected
// before anything is written to disk.
const MaxUploadBytes = 5 << 20 // 5MB

// Extension allowlist for image uploads. There is intentionally no
// content sniffing: the contract is extension plus size only.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Sentinel errors returned by SaveUpload. Handlers map both to 400.
var (
	ErrBadExtension = errors.New("only .jpg, .jpeg and .png files are allowed")
	ErrFileTooLarge = errors.New("file exceeds the 5MB size limit")
)

// SaveUpload validates a multipart file and writes it into dir under the
// name `<uploadEpochMillis>-<originalName>`. It returns the stored path
// (relative, using forward slashes) for the caller to persist on the
// owning record. The directory is created on first use.
func SaveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrBadExtension
	}
	if fh.Size > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fh.Filename))
	dstPath := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy at most the cap plus one byte so a lying Size header cannot
	// smuggle an oversized body onto disk.
	n, err := io.Copy(dst, io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		os.Remove(dstPath)
		return "", err
	}
	if n > MaxUploadBytes {
		os.Remove(dstPath)
		return "", ErrFileTooLarge
	}

	return filepath.ToSlash(dstPath), nil
}
