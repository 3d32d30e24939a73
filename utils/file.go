package utils

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const MaxImageSize = 10 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	ErrImageTooLarge   = errors.New("file size exceeds maximum allowed size (10MB)")
	ErrInvalidFileType = errors.New("invalid file type. Only JPEG, PNG, WebP and GIF images are allowed")
)

// ValidateImage checks size, extension and the declared content type of an
// uploaded image.
func ValidateImage(header *multipart.FileHeader) error {
	if header.Size > MaxImageSize {
		return ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return ErrInvalidFileType
	}

	if ct := header.Header.Get("Content-Type"); ct != "" && !allowedImageTypes[strings.ToLower(ct)] {
		return ErrInvalidFileType
	}

	return nil
}
