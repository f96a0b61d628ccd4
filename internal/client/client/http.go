package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 1 << 20
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *HTTPClient) Upload(ctx context.Context, file models.UploadFile) (*models.UploadResult, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	part, err := mw.CreateFormFile("file", filepath.Base(file.Name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if file.Content != nil {
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrUpload, file.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	var out models.UploadResult
	if err := c.do(ctx, "upload", http.MethodPost, "/upload/", body, mw.FormDataContentType(), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return &out, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) (*models.FileList, error) {
	var out models.FileList
	if err := c.do(ctx, "list_files", http.MethodGet, "/list_files/", nil, "", &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrList, err)
	}
	if out.Files == nil {
		out.Files = []string{}
	}
	return &out, nil
}

func (c *HTTPClient) ViewSummary(ctx context.Context, filename string) (*models.Summary, error) {
	var out models.Summary
	err := c.do(ctx, "view_summary", http.MethodGet, "/view_summary/"+url.PathEscape(filename), nil, "", &out)
	if err != nil {
		var be *BackendError
		if errors.As(err, &be) && be.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return &out, nil
}

// Search posts query to the backend. A blank query is answered locally
// with an empty result set and never reaches the network.
func (c *HTTPClient) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return &models.SearchResponse{Results: []models.SearchResult{}}, nil
	}

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}

	var out models.SearchResponse
	if err := c.do(ctx, "search", http.MethodPost, "/search/", bytes.NewReader(payload), "application/json", &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}
	return &out, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, filename string) (string, error) {
	var out models.DeleteResult
	if err := c.do(ctx, "delete_file", http.MethodDelete, "/delete_file/"+url.PathEscape(filename), nil, "", &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDelete, err)
	}
	return out.Message, nil
}

func (c *HTTPClient) Summarize(ctx context.Context, filename string) (*models.SummarizeResult, error) {
	payload, err := json.Marshal(map[string]string{"filename": filename})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummarize, err)
	}

	var out models.SummarizeResult
	if err := c.do(ctx, "summarize", http.MethodPost, "/summarize/", bytes.NewReader(payload), "application/json", &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummarize, err)
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	requestID := uuid.NewString()
	log := c.logger.With("op", op, "request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "err", err.Error())
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		be := decodeBackendError(resp)
		log.Warn(ctx, "backend rejected request", "status", be.StatusCode, "detail", be.Detail)
		return be
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeBackendError(resp *http.Response) *BackendError {
	be := &BackendError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return be
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return be
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		be.Detail = detail
	}
	return be
}
