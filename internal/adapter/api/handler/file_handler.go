package handler

import (
	"fmt"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"devconnect/internal/infrastructure/storage"
	"devconnect/pkg/errors"
	"devconnect/pkg/logger"
	"devconnect/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
	maxFileSize   int64
}

var fileHandler *FileHandler

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
		maxFileSize:   5 * 1024 * 1024,
	}
}

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

// UploadFile stores a multipart file in cloud storage and returns its URL,
// for use as a chat attachment, avatar, or post cover image.
func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !isAllowedFileType(fileType) {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	folder := sanitizeFolderName(c.FormValue("folder"))

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.storageClient.UploadFile(c.Request().Context(), src, fileType, folder)
	if err != nil {
		logger.Error("Storage upload failed: %v", err)
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Success(c, map[string]interface{}{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}

func isAllowedFileType(fileType string) bool {
	switch fileType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "application/pdf", "text/plain":
		return true
	}
	return false
}

func sanitizeFolderName(folder string) string {
	folder = filepath.Base(folder)

	valid := make([]rune, 0, len(folder))
	for _, char := range folder {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			valid = append(valid, char)
		}
	}

	if len(valid) == 0 {
		return "uploads"
	}
	return string(valid)
}
