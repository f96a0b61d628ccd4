package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/storage"
	"github.com/dmitrijs2005/docdesk/internal/filex"
	"github.com/dmitrijs2005/docdesk/internal/logging"
	"github.com/dmitrijs2005/docdesk/internal/netx"
	"github.com/dmitrijs2005/docdesk/internal/pdfx"
)

const (
	msgStorageListFailed = "Failed to load documents from storage"
	msgViewerFailed      = "Failed to load document"
	msgPreviewFailed     = "Failed to load PDF. The file may be corrupted or the URL may have expired."
	msgOnlyPDF           = "Only PDF files can be viewed in the browser. Please download other file types."
	msgStorageDisabled   = "Storage browsing is disabled: storage URL and key are not configured."
)

// Viewer is the preview bound to one object and its signed URL.
type Viewer struct {
	Filename  string
	URL       string
	ExpiresAt time.Time
}

type StorageState struct {
	Loading       bool
	LoadingViewer bool
	Disabled      bool
	Error         string
	Objects       []models.StorageObject
	Loaded        bool
	Viewer        *Viewer
}

// StorageBrowser drives the storage view. A nil provider yields a
// permanently disabled browser.
type StorageBrowser struct {
	provider   storage.Provider
	ttl        time.Duration
	httpClient *http.Client
	logger     logging.Logger

	download func(ctx context.Context, c *http.Client, url string, limit int64) ([]byte, error)
	extract  func(data []byte, maxRunes int) (*pdfx.Text, error)
	save     func(dir, name string, data []byte) (string, error)

	mu        sync.Mutex
	state     StorageState
	requests  tracker
	listSeq   uint64
	viewerSeq uint64
}

func NewStorageBrowser(provider storage.Provider, ttl time.Duration, httpClient *http.Client, logger logging.Logger) *StorageBrowser {
	if ttl <= 0 {
		ttl = storage.DefaultSignedURLTTL
	}
	return &StorageBrowser{
		provider:   provider,
		ttl:        ttl,
		httpClient: httpClient,
		logger:     logger.With("controller", "storage"),
		download:   netx.Download,
		extract:    pdfx.ExtractText,
		save:       filex.SaveFile,
		state:      StorageState{Disabled: provider == nil},
	}
}

func (b *StorageBrowser) Snapshot() StorageState {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state
	s.Loading = b.requests.busy()
	s.Objects = append([]models.StorageObject(nil), b.state.Objects...)
	if b.state.Viewer != nil {
		v := *b.state.Viewer
		s.Viewer = &v
	}
	return s
}

// Mount lists the bucket. Storage messages are shown as they come.
func (b *StorageBrowser) Mount(ctx context.Context) {
	b.mu.Lock()
	if b.provider == nil {
		b.state.Error = msgStorageDisabled
		b.mu.Unlock()
		return
	}
	b.listSeq++
	seq := b.listSeq
	b.requests.begin()
	b.state.Error = ""
	b.mu.Unlock()

	objects, err := b.provider.List(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests.end()

	if seq != b.listSeq {
		b.logger.Debug(ctx, "stale storage listing discarded", "seq", seq, "latest", b.listSeq)
		return
	}
	if err != nil {
		b.logger.Warn(ctx, "storage list failed", "err", err.Error())
		b.state.Error = storageMessage(err, msgStorageListFailed)
		return
	}
	b.state.Objects = objects
	b.state.Loaded = true
}

// SelectFile opens the preview of a PDF object with a freshly signed URL.
// Other types are download-only and never reach the storage service.
func (b *StorageBrowser) SelectFile(ctx context.Context, name string) error {
	b.mu.Lock()
	if b.provider == nil {
		b.mu.Unlock()
		return ErrStorageDisabled
	}
	b.state.Error = ""
	if !models.IsPDF(name) {
		b.state.Error = msgOnlyPDF
		b.mu.Unlock()
		return nil
	}
	b.viewerSeq++
	seq := b.viewerSeq
	b.state.LoadingViewer = true
	b.mu.Unlock()

	signed, err := b.provider.CreateSignedURL(ctx, name, b.ttl)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.viewerSeq {
		return nil
	}
	b.state.LoadingViewer = false
	if err != nil {
		b.logger.Warn(ctx, "create signed url failed", "file", name, "err", err.Error())
		b.state.Error = storageMessage(err, msgViewerFailed)
		b.state.Viewer = nil
		return nil
	}
	b.state.Viewer = &Viewer{Filename: name, URL: signed.URL, ExpiresAt: signed.ExpiresAt}
	return nil
}

func (b *StorageBrowser) CloseViewer() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewerSeq++
	b.state.Viewer = nil
	b.state.LoadingViewer = false
}

func (b *StorageBrowser) DismissError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Error = ""
}

// PreviewText downloads the open document and returns its plain text.
func (b *StorageBrowser) PreviewText(ctx context.Context, maxRunes int) (*pdfx.Text, error) {
	b.mu.Lock()
	v := b.state.Viewer
	b.mu.Unlock()
	if v == nil {
		return nil, ErrNoViewer
	}

	data, err := b.download(ctx, b.httpClient, v.URL, 0)
	if err == nil {
		var text *pdfx.Text
		if text, err = b.extract(data, maxRunes); err == nil {
			return text, nil
		}
	}

	b.logger.Warn(ctx, "preview failed", "file", v.Filename, "err", err.Error())
	b.mu.Lock()
	b.state.Error = msgPreviewFailed
	b.mu.Unlock()
	return nil, fmt.Errorf("preview %s: %w", v.Filename, err)
}

// Download saves any object, PDF or not, into dir and returns the local path.
func (b *StorageBrowser) Download(ctx context.Context, name, dir string) (string, error) {
	if b.provider == nil {
		return "", ErrStorageDisabled
	}

	signed, err := b.provider.CreateSignedURL(ctx, name, b.ttl)
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", name, err)
	}
	data, err := b.download(ctx, b.httpClient, signed.URL, 0)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", name, err)
	}
	path, err := b.save(dir, name, data)
	if err != nil {
		return "", err
	}
	b.logger.Info(ctx, "object downloaded", "file", name, "path", path, "bytes", len(data))
	return path, nil
}

// Stat looks one object up by name.
func (b *StorageBrowser) Stat(ctx context.Context, name string) (*models.StorageObject, error) {
	if b.provider == nil {
		return nil, ErrStorageDisabled
	}
	return b.provider.Find(ctx, name)
}

func storageMessage(err error, fallback string) string {
	if msg := storage.Message(err); msg != "" {
		return msg
	}
	return fallback
}
