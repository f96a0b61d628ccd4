package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means no HTTP response was received at all.
	ErrUnavailable = errors.New("backend unavailable")

	ErrUpload    = errors.New("upload failed")
	ErrList      = errors.New("list files failed")
	ErrNotFound  = errors.New("summary not found")
	ErrFetch     = errors.New("fetch summary failed")
	ErrSearch    = errors.New("search failed")
	ErrDelete    = errors.New("delete failed")
	ErrSummarize = errors.New("summarize failed")
)

// BackendError is a non-2xx answer. Detail holds the backend's "detail"
// field when it was a plain string; it is meant to be shown verbatim.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Detail)
}

// Detail returns the backend-provided detail message carried by err, if any.
func Detail(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Detail
	}
	return ""
}
