package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docdesk/internal/client/services"
	"github.com/dmitrijs2005/docdesk/internal/client/storage"
	"github.com/pkg/browser"
)

// openBrowser is a test seam for browser.OpenURL.
var openBrowser = browser.OpenURL

const previewRunes = 4000

func (a *App) Show(ctx context.Context, name string) error {
	if err := a.storage.SelectFile(ctx, name); a.busy(err) {
		return err
	}
	a.showStorageViewer()
	return nil
}

func (a *App) Stat(ctx context.Context, name string) error {
	o, err := a.storage.Stat(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			printlnFn(fmt.Sprintf("No object named %q in storage.", name))
			return err
		}
		if !errors.Is(err, services.ErrStorageDisabled) {
			printlnFn("Lookup failed:", storage.Message(err))
			return err
		}
		a.busy(err)
		return err
	}
	renderObject(a.out, o)
	return nil
}

// Text prints the extracted text of the open PDF.
func (a *App) Text(ctx context.Context) error {
	text, err := a.storage.PreviewText(ctx, previewRunes)
	if err != nil {
		if errors.Is(err, services.ErrNoViewer) {
			a.busy(err)
			return err
		}
		a.showStorageViewer()
		return err
	}

	fmt.Fprintf(a.out, "%d page(s)\n\n", text.Pages)
	for _, line := range wrap(text.Content, terminalWidth()) {
		fmt.Fprintln(a.out, line)
	}
	if text.Truncated {
		fmt.Fprintln(a.out, "\n... (truncated, use 'download' for the full document)")
	}
	return nil
}

func (a *App) Open(ctx context.Context) error {
	v := a.storage.Snapshot().Viewer
	if v == nil {
		a.busy(services.ErrNoViewer)
		return services.ErrNoViewer
	}
	if err := openBrowser(v.URL); err != nil {
		a.logger.Warn(ctx, "open browser failed", "err", err.Error())
		printlnFn("Could not open a browser. Use 'url' and open the link manually.")
		return err
	}
	printlnFn("Opened", v.Filename, "in the browser.")
	return nil
}

func (a *App) URL(ctx context.Context) error {
	v := a.storage.Snapshot().Viewer
	if v == nil {
		a.busy(services.ErrNoViewer)
		return services.ErrNoViewer
	}
	fmt.Fprintln(a.out, v.URL)
	return nil
}

// Download saves name, or the open document when name is empty.
func (a *App) Download(ctx context.Context, name string) error {
	if name == "" {
		v := a.storage.Snapshot().Viewer
		if v == nil {
			printlnFn("Usage: download <file>")
			return services.ErrNoViewer
		}
		name = v.Filename
	}

	path, err := a.storage.Download(ctx, name, a.config.DownloadDir)
	if err != nil {
		if errors.Is(err, services.ErrStorageDisabled) {
			a.busy(err)
			return err
		}
		printlnFn("Download failed:", storage.Message(err))
		return err
	}
	printlnFn("Saved to", path)
	return nil
}

func (a *App) Close(ctx context.Context) error {
	a.storage.CloseViewer()
	printlnFn("Viewer closed.")
	return nil
}

func (a *App) showStorage() {
	s := a.storage.Snapshot()
	renderAlerts(a.out, s.Error, "")
	renderStorage(a.out, s, a.config.StorageBucket)
}

func (a *App) showStorageViewer() {
	s := a.storage.Snapshot()
	renderAlerts(a.out, s.Error, "")
	renderViewer(a.out, s)
}
