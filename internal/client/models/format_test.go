package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedDocument(t *testing.T) {
	for _, name := range []string{"report.pdf", "notes.docx", "deck.pptx", "SCAN.PDF", "a.b.Docx"} {
		assert.True(t, IsSupportedDocument(name), name)
	}
	for _, name := range []string{"report.txt", "notes.doc", "deck.ppt", "pdf", "archive.pdf.zip", ""} {
		assert.False(t, IsSupportedDocument(name), name)
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("a.pdf"))
	assert.True(t, IsPDF("A.PdF"))
	assert.False(t, IsPDF("notes.docx"))
	assert.False(t, IsPDF("pdf"))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Unknown size"},
		{512, "512 B"},
		{1536, "1.50 KB"},
		{2 * 1024 * 1024, "2.00 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in))
	}
}

func TestFormatRelevance(t *testing.T) {
	assert.Equal(t, "92.0%", FormatRelevance(0.92))
	assert.Equal(t, "47.0%", FormatRelevance(0.47))
	assert.Equal(t, "100.0%", FormatRelevance(1))
	assert.Equal(t, "0.0%", FormatRelevance(0))
}

func TestStorageObject_Size(t *testing.T) {
	assert.Equal(t, int64(0), StorageObject{Name: "a"}.Size())
	assert.Equal(t, int64(42), StorageObject{Name: "a", Metadata: &ObjectMetadata{Size: 42}}.Size())
}

func TestActiveView_Valid(t *testing.T) {
	assert.True(t, ViewDocuments.Valid())
	assert.True(t, ViewStorage.Valid())
	assert.False(t, ActiveView("settings").Valid())
}
