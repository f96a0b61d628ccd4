package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/services"
	"github.com/dmitrijs2005/docdesk/internal/client/viewstate"
)

// SwitchView changes the active view. The view is mounted by the hook
// installed in session; re-selecting the active view mounts it again.
func (a *App) SwitchView(ctx context.Context, name string) error {
	v, err := viewstate.ParseView(name)
	if err != nil {
		printlnFn(fmt.Sprintf("Unknown view %q. Use documents or storage.", name))
		return err
	}
	views := viewstate.FromContext(ctx)
	if views.Active() == v {
		return a.List(ctx)
	}
	return views.Set(v)
}

// List mounts whichever view is active.
func (a *App) List(ctx context.Context) error {
	a.mount(ctx, viewstate.FromContext(ctx).Active())
	return nil
}

func (a *App) mount(ctx context.Context, v models.ActiveView) {
	if v == models.ViewStorage {
		a.storage.Mount(ctx)
		a.showStorage()
		return
	}
	a.docs.Mount(ctx)
	a.showDocuments()
}

func (a *App) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file:", err.Error())
		return err
	}
	defer f.Close()

	var size int64
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	fmt.Fprintf(a.out, "Uploading %s...\n", path)
	err = a.docs.Upload(ctx, models.UploadFile{Name: path, Size: size, Content: f})
	if a.busy(err) {
		return err
	}
	a.showDocuments()
	return nil
}

func (a *App) Summary(ctx context.Context, name string) error {
	if err := a.docs.ViewSummary(ctx, name); a.busy(err) {
		return err
	}
	a.showSummary()
	return nil
}

func (a *App) Summarize(ctx context.Context, name string) error {
	fmt.Fprintf(a.out, "Regenerating summary for %s...\n", name)
	if err := a.docs.Summarize(ctx, name); a.busy(err) {
		return err
	}
	a.showSummary()
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	if err := a.docs.Search(ctx, query); a.busy(err) {
		return err
	}
	s := a.docs.Snapshot()
	renderAlerts(a.out, s.Error, "")
	renderSearch(a.out, s)
	return nil
}

// Delete runs the two-step delete: the question comes from the workflow,
// the answer decides between ConfirmDelete and CancelDelete.
func (a *App) Delete(ctx context.Context, name string) error {
	prompt, err := a.docs.RequestDelete(name)
	if a.busy(err) {
		return err
	}

	if !Confirm(a.reader, prompt, a.out) {
		a.docs.CancelDelete()
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.docs.ConfirmDelete(ctx); a.busy(err) {
		return err
	}
	a.showDocuments()
	return nil
}

// Dismiss clears the advisory messages of the active view.
func (a *App) Dismiss(ctx context.Context) error {
	if viewstate.FromContext(ctx).Active() == models.ViewStorage {
		a.storage.DismissError()
		return nil
	}
	a.docs.DismissError()
	a.docs.DismissSuccess()
	a.docs.CloseSummary()
	return nil
}

func (a *App) showDocuments() {
	s := a.docs.Snapshot()
	renderAlerts(a.out, s.Error, s.Success)
	renderFiles(a.out, s)
}

func (a *App) showSummary() {
	s := a.docs.Snapshot()
	renderAlerts(a.out, s.Error, s.Success)
	renderSummary(a.out, s.Summary, terminalWidth())
}

// busy reports whether err should stop the command, printing the reason.
func (a *App) busy(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, services.ErrBusy):
		printlnFn("Please wait: another operation is in progress.")
	case errors.Is(err, services.ErrStorageDisabled):
		printlnFn("Storage browsing is disabled: storage URL and key are not configured.")
	case errors.Is(err, services.ErrNoViewer):
		printlnFn("No document is open. Use 'show <file>' first.")
	default:
		printlnFn("Error:", err.Error())
	}
	return true
}
