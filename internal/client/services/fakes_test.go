package services

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/storage"
)

// fakeBackend keeps an in-memory file list so mutations round-trip
// through ListFiles the way the real backend does.
type fakeBackend struct {
	mu    sync.Mutex
	files []string
	calls map[string]int

	summaries map[string]string
	search    *models.SearchResponse

	listErr      error
	uploadErr    error
	summaryErr   error
	summarizeErr error
	searchErr    error
	deleteErr    error

	// optional overrides, called with the 1-based call number
	listFn   func(ctx context.Context, n int) (*models.FileList, error)
	uploadFn func(ctx context.Context) error
	searchFn func(ctx context.Context, n int, query string) (*models.SearchResponse, error)
}

var _ client.Backend = (*fakeBackend)(nil)

func newFakeBackend(files ...string) *fakeBackend {
	return &fakeBackend{
		files:     append([]string{}, files...),
		calls:     map[string]int{},
		summaries: map[string]string{},
	}
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.calls[op]
}

func (f *fakeBackend) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) Upload(ctx context.Context, file models.UploadFile) (*models.UploadResult, error) {
	f.count("upload")
	if f.uploadFn != nil {
		if err := f.uploadFn(ctx); err != nil {
			return nil, err
		}
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	name := filepath.Base(file.Name)
	f.mu.Lock()
	f.files = append([]string{name}, f.files...)
	f.mu.Unlock()
	return &models.UploadResult{Filename: name, SummaryGenerated: true}, nil
}

func (f *fakeBackend) ListFiles(ctx context.Context) (*models.FileList, error) {
	n := f.count("list")
	if f.listFn != nil {
		return f.listFn(ctx, n)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.FileList{Files: append([]string{}, f.files...), Source: "local"}, nil
}

func (f *fakeBackend) ViewSummary(ctx context.Context, filename string) (*models.Summary, error) {
	f.count("summary")
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return &models.Summary{Filename: filename, Summary: f.summaries[filename]}, nil
}

func (f *fakeBackend) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	n := f.count("search")
	if f.searchFn != nil {
		return f.searchFn(ctx, n, query)
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.search == nil {
		return &models.SearchResponse{Results: []models.SearchResult{}}, nil
	}
	return f.search, nil
}

func (f *fakeBackend) DeleteFile(ctx context.Context, filename string) (string, error) {
	f.count("delete")
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.files[:0]
	for _, name := range f.files {
		if name != filename {
			kept = append(kept, name)
		}
	}
	f.files = kept
	return "File deleted", nil
}

func (f *fakeBackend) Summarize(ctx context.Context, filename string) (*models.SummarizeResult, error) {
	f.count("summarize")
	if f.summarizeErr != nil {
		return nil, f.summarizeErr
	}
	f.mu.Lock()
	f.summaries[filename] = "regenerated " + filename
	f.mu.Unlock()
	return &models.SummarizeResult{Filename: filename, Summary: "regenerated " + filename}, nil
}

type fakeProvider struct {
	mu      sync.Mutex
	objects []models.StorageObject
	calls   map[string]int

	listErr error
	signErr error
	listFn  func(ctx context.Context, n int) ([]models.StorageObject, error)

	signed []string
}

var _ storage.Provider = (*fakeProvider)(nil)

func newFakeProvider(objects ...models.StorageObject) *fakeProvider {
	return &fakeProvider{objects: objects, calls: map[string]int{}}
}

func (p *fakeProvider) count(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[op]++
	return p.calls[op]
}

func (p *fakeProvider) Calls(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

func (p *fakeProvider) List(ctx context.Context) ([]models.StorageObject, error) {
	n := p.count("list")
	if p.listFn != nil {
		return p.listFn(ctx, n)
	}
	if p.listErr != nil {
		return nil, p.listErr
	}
	return append([]models.StorageObject{}, p.objects...), nil
}

func (p *fakeProvider) CreateSignedURL(ctx context.Context, name string, expiresIn time.Duration) (*models.SignedURL, error) {
	n := p.count("sign")
	if p.signErr != nil {
		return nil, p.signErr
	}
	url := "https://storage.test/object/sign/files/" + name + "?token=t" + string(rune('0'+n))
	p.mu.Lock()
	p.signed = append(p.signed, url)
	p.mu.Unlock()
	return &models.SignedURL{URL: url, ExpiresAt: time.Unix(1900000000, 0).Add(expiresIn)}, nil
}

func (p *fakeProvider) Find(ctx context.Context, name string) (*models.StorageObject, error) {
	p.count("find")
	for _, o := range p.objects {
		if o.Name == name {
			return &o, nil
		}
	}
	return nil, storage.ErrObjectNotFound
}
