// Package imageenc turns small uploaded images into data URLs that can be stored
// inline on an account (avatar, portfolio).
package imageenc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const MaxFileSize = 200 * 1024 // 200 KB

// AllowedMimeTypes defines which image types are accepted
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
)

type Image struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	DataURL  string `json:"url"`
}

// Encode validates data and returns it as a base64 data URL. declared is the
// client-supplied content type and may be empty; the sniffed type must agree
// with the allow-list either way.
func Encode(name, declared string, data []byte) (*Image, error) {
	size := int64(len(data))
	if size == 0 {
		return nil, ErrEmptyFile
	}
	if err := checkSize(name, size); err != nil {
		return nil, err
	}

	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	if declared != "" && !AllowedMimeTypes[declared] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMimeType, declared)
	}

	detected := mimetype.Detect(data).String()
	if !AllowedMimeTypes[detected] {
		return nil, fmt.Errorf("%w: %s (allowed: jpeg, png, webp)", ErrInvalidMimeType, detected)
	}

	return &Image{
		Name:     name,
		MimeType: detected,
		Size:     size,
		DataURL:  "data:" + detected + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// FromMultipart rejects oversized files by header before reading the body.
func FromMultipart(fh *multipart.FileHeader) (*Image, error) {
	if err := checkSize(fh.Filename, fh.Size); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	return Encode(fh.Filename, fh.Header.Get("Content-Type"), data)
}

func checkSize(name string, size int64) error {
	if size > MaxFileSize {
		return fmt.Errorf("%w: %s is %.1fKB, maximum is %dKB",
			ErrFileTooLarge, name, float64(size)/1024, MaxFileSize/1024)
	}
	return nil
}
