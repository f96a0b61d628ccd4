// Package client talks to the docdesk document backend.
//
// # Overview
//
// Backend is the transport-agnostic contract (upload, list, summary,
// search, delete, summarize). HTTPClient implements it over the backend's
// REST API:
//
//	POST   /upload/                 multipart "file"
//	GET    /list_files/
//	GET    /view_summary/{filename}
//	POST   /search/                 {"query": ...}
//	DELETE /delete_file/{filename}
//	POST   /summarize/              {"filename": ...}
//
// # Error Handling
//
// Each failure wraps an operation sentinel (ErrUpload, ErrList, ErrNotFound,
// ErrFetch, ErrSearch, ErrDelete, ErrSummarize) together with its cause:
// ErrUnavailable when nothing answered, or *BackendError for a non-2xx
// response. Use errors.Is / errors.As, and Detail to pull out the message
// the backend wants shown to the user.
//
// Every request carries an X-Request-ID header that is also logged.
package client
