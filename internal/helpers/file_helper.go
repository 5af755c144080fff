package helpers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	UploadBasePath   string
	PublicPrefix     string
}

// ImageUploadConfig stores images under root and exposes them below /media.
func ImageUploadConfig(root string) UploadConfig {
	return UploadConfig{
		MaxSizeBytes: 5 * 1024 * 1024, // 5MB
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
		},
		UploadBasePath: root,
		PublicPrefix:   "/media",
	}
}

// UploadFile validates and stores an uploaded file under uploadType and
// returns its public reference.
func UploadFile(c *gin.Context, fileHeader *multipart.FileHeader, uploadType string, config UploadConfig) (string, error) {
	if fileHeader.Size > config.MaxSizeBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}

	if !mimetype.EqualsAny(mtype.String(), config.AllowedMimeTypes...) {
		return "", fmt.Errorf("upload a valid image. Allowed types: %s", strings.Join(config.AllowedMimeTypes, ", "))
	}

	uploadPath := filepath.Join(config.UploadBasePath, uploadType)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.New().String() + mtype.Extension()
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(uploadPath, filename)); err != nil {
		return "", err
	}

	return path.Join(config.PublicPrefix, uploadType, filename), nil
}

// DeleteFile removes a file previously returned by UploadFile.
func DeleteFile(config UploadConfig, reference string) error {
	rel := strings.TrimPrefix(reference, config.PublicPrefix+"/")
	if rel == reference || strings.Contains(rel, "..") {
		return fmt.Errorf("not an uploaded file: %s", reference)
	}
	return os.Remove(filepath.Join(config.UploadBasePath, filepath.FromSlash(rel)))
}
