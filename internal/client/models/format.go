package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SupportedDocumentExtensions lists what the backend accepts for upload.
var SupportedDocumentExtensions = []string{".pdf", ".docx", ".pptx"}

// Extension returns the lower-cased extension of name including the dot.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func IsSupportedDocument(name string) bool {
	ext := Extension(name)
	for _, e := range SupportedDocumentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsPDF reports whether name ends in .pdf, ignoring case.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

func FormatSize(bytes int64) string {
	switch {
	case bytes <= 0:
		return "Unknown size"
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
	}
}

// FormatRelevance renders a 0..1 score as a percentage, e.g. 0.92 -> "92.0%".
func FormatRelevance(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}
