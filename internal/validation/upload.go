package validation

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// UploadPolicy is the client-side allow-list applied before any upload
// request is issued. Entries ending in "*" match a MIME type prefix,
// entries starting with "." match the file extension, anything else
// must equal the MIME type exactly.
type UploadPolicy struct {
	MaxFileSizeMB int64
	AllowedTypes  []string
}

// DefaultUploadPolicy mirrors the upload form defaults of the web
// product: 10MB ceiling, images, PDFs, plain text and office documents.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxFileSizeMB: 10,
		AllowedTypes: []string{
			"image/*",
			"application/pdf",
			"text/*",
			".doc", ".docx",
			".xls", ".xlsx",
			".ppt", ".pptx",
		},
	}
}

// MaxFileSizeBytes returns the ceiling in bytes.
func (p UploadPolicy) MaxFileSizeBytes() int64 {
	return p.MaxFileSizeMB * 1024 * 1024
}

// ValidateFile checks a candidate upload against the policy. The
// returned error message is user-facing; a nil error means the file may
// be sent.
func (p UploadPolicy) ValidateFile(name string, size int64) error {
	if size > p.MaxFileSizeBytes() {
		return fmt.Errorf("file size exceeds %dMB limit", p.MaxFileSizeMB)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(name))
	// TypeByExtension may append parameters like "; charset=utf-8"
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	lowerName := strings.ToLower(name)
	for _, allowed := range p.AllowedTypes {
		switch {
		case strings.HasSuffix(allowed, "*"):
			prefix := strings.TrimSuffix(allowed, "*")
			if mimeType != "" && strings.HasPrefix(mimeType, prefix) {
				return nil
			}
		case strings.HasPrefix(allowed, "."):
			if strings.HasSuffix(lowerName, strings.ToLower(allowed)) {
				return nil
			}
		default:
			if mimeType == allowed {
				return nil
			}
		}
	}

	return fmt.Errorf("file type not supported")
}
