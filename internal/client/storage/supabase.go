package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// SupabaseProvider talks to the Supabase Storage REST API with the
// project's public (anon) key.
type SupabaseProvider struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
	logger     logging.Logger
	now        func() time.Time
}

func NewSupabaseProvider(projectURL, apiKey, bucket string, timeout time.Duration, logger logging.Logger) *SupabaseProvider {
	return &SupabaseProvider{
		baseURL:    strings.TrimRight(projectURL, "/") + "/storage/v1",
		apiKey:     apiKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("storage", "supabase", "bucket", bucket),
		now:        time.Now,
	}
}

type sortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	SortBy sortBy `json:"sortBy"`
	Search string `json:"search,omitempty"`
}

func (s *SupabaseProvider) List(ctx context.Context) ([]models.StorageObject, error) {
	objects, err := s.list(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageList, err)
	}
	return objects, nil
}

func (s *SupabaseProvider) Find(ctx context.Context, name string) (*models.StorageObject, error) {
	dir, base := path.Split(name)
	objects, err := s.list(ctx, strings.TrimSuffix(dir, "/"), base)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageList, err)
	}
	for i := range objects {
		if objects[i].Name == base {
			o := objects[i]
			o.Name = name
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
}

func (s *SupabaseProvider) list(ctx context.Context, prefix, search string) ([]models.StorageObject, error) {
	body := listRequest{
		Prefix: prefix,
		Limit:  ListLimit,
		Offset: 0,
		SortBy: sortBy{Column: "created_at", Order: "desc"},
		Search: search,
	}

	objects := make([]models.StorageObject, 0)
	if err := s.post(ctx, "/object/list/"+url.PathEscape(s.bucket), body, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

func (s *SupabaseProvider) CreateSignedURL(ctx context.Context, name string, expiresIn time.Duration) (*models.SignedURL, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultSignedURLTTL
	}

	body := map[string]int64{"expiresIn": int64(expiresIn / time.Second)}
	var out struct {
		SignedURL string `json:"signedURL"`
	}
	endpoint := "/object/sign/" + url.PathEscape(s.bucket) + "/" + escapeObjectPath(name)
	if err := s.post(ctx, endpoint, body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignedURL, err)
	}
	if out.SignedURL == "" {
		return nil, fmt.Errorf("%w: %w", ErrSignedURL, &StorageError{Message: "no signed URL returned for " + name})
	}

	signed := s.baseURL + out.SignedURL
	if strings.HasPrefix(out.SignedURL, "http://") || strings.HasPrefix(out.SignedURL, "https://") {
		signed = out.SignedURL
	}

	return &models.SignedURL{
		URL:       signed,
		ExpiresAt: s.expiry(signed, expiresIn),
	}, nil
}

// expiry reads the exp claim of the token embedded in a signed URL. The
// token is not verified; the storage service enforces expiry itself.
func (s *SupabaseProvider) expiry(signed string, expiresIn time.Duration) time.Time {
	fallback := s.now().Add(expiresIn)

	u, err := url.Parse(signed)
	if err != nil {
		return fallback
	}
	token := u.Query().Get("token")
	if token == "" {
		return fallback
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return fallback
	}
	return claims.ExpiresAt.Time
}

func (s *SupabaseProvider) post(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn(ctx, "storage request failed", "endpoint", endpoint, "err", err.Error())
		return &StorageError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		se := decodeStorageError(resp)
		s.logger.Warn(ctx, "storage rejected request", "endpoint", endpoint, "status", se.StatusCode, "message", se.Message)
		return se
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &StorageError{StatusCode: resp.StatusCode, Message: "decode storage response: " + err.Error()}
	}
	return nil
}

func decodeStorageError(resp *http.Response) *StorageError {
	se := &StorageError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return se
	}
	switch {
	case payload.Message != "":
		se.Message = payload.Message
	case payload.Error != "":
		se.Message = payload.Error
	}
	return se
}
