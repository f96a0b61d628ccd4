package client

import (
	"context"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

// Backend is the document backend contract. Every call is a single attempt:
// no retry, caching, or de-duplication happens underneath.
type Backend interface {
	Upload(ctx context.Context, file models.UploadFile) (*models.UploadResult, error)
	ListFiles(ctx context.Context) (*models.FileList, error)
	ViewSummary(ctx context.Context, filename string) (*models.Summary, error)
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
	DeleteFile(ctx context.Context, filename string) (string, error)
	Summarize(ctx context.Context, filename string) (*models.SummarizeResult, error)
}
