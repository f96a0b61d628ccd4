package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
	"github.com/dmitrijs2005/docdesk/internal/client/config"
	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/services"
	"github.com/dmitrijs2005/docdesk/internal/client/storage"
	"github.com/dmitrijs2005/docdesk/internal/client/validation"
	"github.com/dmitrijs2005/docdesk/internal/client/viewstate"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	docs    *services.DocumentWorkflow
	storage *services.StorageBrowser
	views   *viewstate.Store
	reader  *bufio.Reader
	out     io.Writer
}

// newProvider is a test seam for building the storage driver.
var newProvider = buildProvider

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	v, err := validation.New(logger)
	if err != nil {
		return nil, err
	}

	backend := client.NewHTTPClient(c.APIURL, c.RequestTimeout, logger)

	provider, err := newProvider(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	httpClient := &http.Client{Timeout: c.RequestTimeout}

	return &App{
		config:  c,
		logger:  logger,
		docs:    services.NewDocumentWorkflow(backend, v, logger),
		storage: services.NewStorageBrowser(provider, c.SignedURLTTL, httpClient, logger),
		views:   viewstate.New(),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// buildProvider returns nil, without error, when storage credentials are
// missing: the storage view is then disabled instead of failing startup.
func buildProvider(ctx context.Context, c *config.Config, logger logging.Logger) (storage.Provider, error) {
	if !c.StorageEnabled() {
		logger.Warn(ctx, "storage credentials are not set, the storage view is disabled",
			"driver", c.StorageDriver)
		return nil, nil
	}

	switch c.StorageDriver {
	case config.DriverS3:
		return storage.NewS3Provider(ctx, storage.S3Options{
			Endpoint:  c.StorageURL,
			Region:    c.StorageRegion,
			AccessKey: c.StorageKey,
			SecretKey: c.StorageSecret,
			Bucket:    c.StorageBucket,
		}, logger)
	default:
		return storage.NewSupabaseProvider(c.StorageURL, c.StorageKey, c.StorageBucket, c.RequestTimeout, logger), nil
	}
}

// Run installs the view store, mounts the documents view and blocks in the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx = a.session(ctx)

	a.logger.Info(ctx, "docdesk started", "api_url", a.config.APIURL, "storage", a.config.StorageDriver)
	fmt.Fprintln(a.out, "Welcome to docdesk (type 'help' for commands)")

	_ = a.List(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

// session installs the view store into ctx and mounts every view the
// store switches to.
func (a *App) session(ctx context.Context) context.Context {
	ctx = viewstate.NewContext(ctx, a.views)
	a.views.OnChange(func(v models.ActiveView) {
		a.mount(ctx, v)
	})
	return ctx
}

func (a *App) status() string {
	return viewLabel(a.views.Active())
}
