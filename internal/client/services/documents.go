package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/validation"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

const (
	msgLoadFailed      = "Failed to load files"
	msgUploadFailed    = "Failed to upload file"
	msgSummaryFailed   = "Failed to load summary"
	msgSummarizeFailed = "Failed to regenerate summary"
	msgSearchFailed    = "Search failed"
	msgDeleteFailed    = "Failed to delete file"
)

type UploadValidator interface {
	ValidateUpload(ctx context.Context, f models.UploadFile) error
}

// SummaryView is the summary panel bound to one filename.
type SummaryView struct {
	Filename string
	Text     string
}

// DocumentState is a copy of the documents view state.
type DocumentState struct {
	Loading bool
	Error   string
	Success string

	Files  []string
	Source string

	Query    string
	Results  []models.SearchResult
	Searched bool

	Summary       *SummaryView
	PendingDelete string
}

type DocumentWorkflow struct {
	backend   client.Backend
	validator UploadValidator
	logger    logging.Logger

	mu        sync.Mutex
	state     DocumentState
	requests  tracker
	listSeq   uint64
	searchSeq uint64
}

func NewDocumentWorkflow(backend client.Backend, validator UploadValidator, logger logging.Logger) *DocumentWorkflow {
	return &DocumentWorkflow{
		backend:   backend,
		validator: validator,
		logger:    logger.With("controller", "documents"),
		state:     DocumentState{Files: []string{}},
	}
}

func (w *DocumentWorkflow) Snapshot() DocumentState {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.state
	s.Loading = w.requests.busy()
	s.Files = append([]string(nil), w.state.Files...)
	s.Results = append([]models.SearchResult(nil), w.state.Results...)
	if w.state.Summary != nil {
		sv := *w.state.Summary
		s.Summary = &sv
	}
	return s
}

// Mount loads the file list.
func (w *DocumentWorkflow) Mount(ctx context.Context) {
	w.refresh(ctx)
}

// refresh runs one listing. Only the newest listing may write the file list.
func (w *DocumentWorkflow) refresh(ctx context.Context) {
	w.mu.Lock()
	w.listSeq++
	seq := w.listSeq
	w.requests.begin()
	w.mu.Unlock()

	res, err := w.backend.ListFiles(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.requests.end()

	if seq != w.listSeq {
		w.logger.Debug(ctx, "stale listing discarded", "seq", seq, "latest", w.listSeq)
		return
	}
	if err != nil {
		w.logger.Warn(ctx, "list files failed", "err", err.Error())
		w.state.Error = describe(err, msgLoadFailed)
		return
	}
	w.state.Files = res.Files
	w.state.Source = res.Source
	w.state.Error = ""
}

// start admits a user action unless one is in flight.
func (w *DocumentWorkflow) start(clearSuccess bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.requests.busy() {
		return ErrBusy
	}
	w.requests.begin()
	w.state.Error = ""
	if clearSuccess {
		w.state.Success = ""
	}
	return nil
}

func (w *DocumentWorkflow) finish(apply func(s *DocumentState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.requests.end()
	apply(&w.state)
}

// Upload validates f locally, sends it and re-lists on success.
func (w *DocumentWorkflow) Upload(ctx context.Context, f models.UploadFile) error {
	if w.isBusy() {
		return ErrBusy
	}

	if err := w.validator.ValidateUpload(ctx, f); err != nil {
		msg := err.Error()
		var ve *validation.Error
		if errors.As(err, &ve) {
			msg = ve.Message
		}
		w.mu.Lock()
		w.state.Error = msg
		w.state.Success = ""
		w.mu.Unlock()
		return nil
	}

	if err := w.start(true); err != nil {
		return err
	}

	name := filepath.Base(f.Name)
	_, err := w.backend.Upload(ctx, f)
	if err != nil {
		w.logger.Warn(ctx, "upload failed", "file", name, "err", err.Error())
		w.finish(func(s *DocumentState) { s.Error = describe(err, msgUploadFailed) })
		return nil
	}

	w.logger.Info(ctx, "document uploaded", "file", name)
	w.setSuccess(fmt.Sprintf("File \"%s\" uploaded successfully! Summary generated and document indexed.", name))
	w.refresh(ctx)
	w.finish(func(*DocumentState) {})
	return nil
}

// ViewSummary fetches the summary of filename and binds the summary panel.
func (w *DocumentWorkflow) ViewSummary(ctx context.Context, filename string) error {
	if err := w.start(false); err != nil {
		return err
	}

	res, err := w.backend.ViewSummary(ctx, filename)
	if err != nil {
		w.logger.Warn(ctx, "view summary failed", "file", filename, "err", err.Error())
		w.finish(func(s *DocumentState) { s.Error = describe(err, msgSummaryFailed) })
		return nil
	}

	w.finish(func(s *DocumentState) {
		s.Summary = &SummaryView{Filename: filename, Text: res.Summary}
	})
	return nil
}

func (w *DocumentWorkflow) CloseSummary() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Summary = nil
}

// Summarize asks the backend to regenerate the summary of filename.
func (w *DocumentWorkflow) Summarize(ctx context.Context, filename string) error {
	if err := w.start(true); err != nil {
		return err
	}

	res, err := w.backend.Summarize(ctx, filename)
	if err != nil {
		w.logger.Warn(ctx, "summarize failed", "file", filename, "err", err.Error())
		w.finish(func(s *DocumentState) { s.Error = describe(err, msgSummarizeFailed) })
		return nil
	}

	w.finish(func(s *DocumentState) {
		s.Summary = &SummaryView{Filename: filename, Text: res.Summary}
		s.Success = fmt.Sprintf("Summary regenerated for \"%s\"", filename)
	})
	return nil
}

// Search runs a semantic search. A blank query only resets the results.
func (w *DocumentWorkflow) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		w.mu.Lock()
		w.searchSeq++
		w.state.Query = ""
		w.state.Results = nil
		w.state.Searched = false
		w.mu.Unlock()
		return nil
	}

	w.mu.Lock()
	if w.requests.busy() {
		w.mu.Unlock()
		return ErrBusy
	}
	w.requests.begin()
	w.searchSeq++
	seq := w.searchSeq
	w.state.Error = ""
	w.mu.Unlock()

	res, err := w.backend.Search(ctx, query)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.requests.end()

	if seq != w.searchSeq {
		w.logger.Debug(ctx, "stale search discarded", "query", query)
		return nil
	}

	w.state.Query = query
	w.state.Searched = true
	switch {
	case err != nil:
		w.logger.Warn(ctx, "search failed", "err", err.Error())
		w.state.Error = describe(err, msgSearchFailed)
		w.state.Results = nil
	case res.Failed:
		w.state.Error = res.Error
		if w.state.Error == "" {
			w.state.Error = msgSearchFailed
		}
		w.state.Results = nil
	default:
		w.state.Results = res.Results
	}
	return nil
}

// RequestDelete is the first half of the delete protocol. It records
// filename as pending and returns the question to put to the user.
func (w *DocumentWorkflow) RequestDelete(filename string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.requests.busy() {
		return "", ErrBusy
	}
	w.state.PendingDelete = filename
	return fmt.Sprintf("Are you sure you want to delete \"%s\"?", filename), nil
}

// CancelDelete drops the pending request and changes nothing else.
func (w *DocumentWorkflow) CancelDelete() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.PendingDelete = ""
}

// ConfirmDelete deletes the pending file and re-lists on success.
func (w *DocumentWorkflow) ConfirmDelete(ctx context.Context) error {
	w.mu.Lock()
	filename := w.state.PendingDelete
	switch {
	case filename == "":
		w.mu.Unlock()
		return ErrNoPendingDelete
	case w.requests.busy():
		w.mu.Unlock()
		return ErrBusy
	}
	w.state.PendingDelete = ""
	w.state.Error = ""
	w.requests.begin()
	w.mu.Unlock()

	_, err := w.backend.DeleteFile(ctx, filename)
	if err != nil {
		w.logger.Warn(ctx, "delete failed", "file", filename, "err", err.Error())
		w.finish(func(s *DocumentState) { s.Error = describe(err, msgDeleteFailed) })
		return nil
	}

	w.logger.Info(ctx, "document deleted", "file", filename)
	w.mu.Lock()
	w.state.Success = fmt.Sprintf("File \"%s\" deleted successfully", filename)
	if w.state.Summary != nil && w.state.Summary.Filename == filename {
		w.state.Summary = nil
	}
	w.mu.Unlock()
	w.refresh(ctx)
	w.finish(func(*DocumentState) {})
	return nil
}

func (w *DocumentWorkflow) DismissError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Error = ""
}

func (w *DocumentWorkflow) DismissSuccess() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Success = ""
}

func (w *DocumentWorkflow) setSuccess(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Success = msg
}

func (w *DocumentWorkflow) isBusy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requests.busy()
}
