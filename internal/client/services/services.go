// Package services holds the controllers behind the two top-level views.
//
// Controllers own their state and recover every failure into an advisory
// message; the only errors they return are protocol errors such as ErrBusy.
package services

import (
	"errors"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
)

var (
	// ErrBusy rejects a user action while another one is still in flight.
	ErrBusy = errors.New("another operation is in progress")

	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrNoViewer        = errors.New("no document is open")
	ErrStorageDisabled = errors.New("storage browsing is disabled")
)

// describe picks the backend's own detail message, or fallback.
func describe(err error, fallback string) string {
	if d := client.Detail(err); d != "" {
		return d
	}
	return fallback
}

// tracker counts in-flight requests. Callers hold the controller mutex.
type tracker struct {
	inflight int
}

func (t *tracker) begin()     { t.inflight++ }
func (t *tracker) end()       { t.inflight-- }
func (t *tracker) busy() bool { return t.inflight > 0 }
