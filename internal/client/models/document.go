package models

import "io"

// FileList is the backend's document listing. A FileRecord has no identity
// beyond its filename.
type FileList struct {
	Files  []string `json:"files"`
	Source string   `json:"source"`
}

// UploadResult is returned by POST /upload/.
type UploadResult struct {
	Filename         string `json:"filename"`
	Message          string `json:"message,omitempty"`
	SummaryGenerated bool   `json:"summary_generated,omitempty"`
	Storage          string `json:"storage,omitempty"`
	URL              string `json:"url,omitempty"`
}

// UploadFile is a local document about to be sent to the backend.
type UploadFile struct {
	Name    string    `validate:"required,document_ext"`
	Size    int64     `validate:"min=0"`
	Content io.Reader `validate:"-"`
}

// Summary is the AI-generated SummaryRecord of one document.
type Summary struct {
	Filename    string `json:"filename"`
	Summary     string `json:"summary"`
	SummaryFile string `json:"summary_file"`
}

// SummarizeResult is returned when a summary is regenerated.
type SummarizeResult struct {
	Filename string `json:"filename"`
	Summary  string `json:"summary"`
}

// DeleteResult is returned by DELETE /delete_file/{filename}.
type DeleteResult struct {
	Message string `json:"message"`
}
