package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const MaxUploadSize = 25 * 1024 * 1024 // 25MB

var ErrFileTooLarge = errors.New("file size exceeds maximum allowed size of 25MB")

// Formats accepted for service and incidence documents
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".xlsx": true,
}

// ValidateDocumentUpload checks size, extension and the sniffed content type
// of an uploaded file before it is handed to storage
func ValidateDocumentUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxUploadSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type not allowed. Accepted formats: PDF, DOC, DOCX, TXT, JPG, PNG, XLSX")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	contentType := http.DetectContentType(buffer[:n])
	if ext == ".pdf" && !strings.HasPrefix(contentType, "application/pdf") {
		return fmt.Errorf("file content does not match the .pdf extension")
	}

	return nil
}
