package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/viewstate"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	SwitchView(ctx context.Context, name string) error

	List(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Summary(ctx context.Context, name string) error
	Summarize(ctx context.Context, name string) error
	Search(ctx context.Context, query string) error
	Delete(ctx context.Context, name string) error
	Dismiss(ctx context.Context) error

	Show(ctx context.Context, name string) error
	Stat(ctx context.Context, name string) error
	Text(ctx context.Context) error
	Open(ctx context.Context) error
	URL(ctx context.Context) error
	Download(ctx context.Context, name string) error
	Close(ctx context.Context) error
}

const (
	helpDocuments = "Available commands: list, upload <path>, summary <file>, summarize <file>, search <query>, delete <file>, dismiss, view <documents|storage>, exit"
	helpStorage   = "Available commands: list, show <file>, stat <file>, text, open, url, download [file], close, dismiss, view <documents|storage>, exit"
)

// runREPL reads one command per line and dispatches it to a. The command set
// depends on the active view held by the viewstate.Store in ctx.
//
//	Always:
//	  - help                    : show available commands
//	  - view <documents|storage>: switch view (aliases: docs, viewDocuments)
//	  - exit | quit             : leave the program
//
//	Documents view:
//	  - list, upload <path>, summary <file>, summarize <file>,
//	    search <query>, delete <file>, dismiss
//
//	Storage view:
//	  - list, show <file>, stat <file>, text, open, url,
//	    download [file], close, dismiss
//
// Errors returned by handlers are ignored; handlers report to the user
// themselves. The loop exits on EOF, "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	views := viewstate.FromContext(ctx)

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("docdesk (%s)> ", statusFn()))
		line, err := readLine(ctx, reader)
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		cmd, arg := splitCommand(line)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if views.Active() == models.ViewStorage {
				printlnFn(helpStorage)
			} else {
				printlnFn(helpDocuments)
			}
			continue
		case "view":
			if arg == "" {
				printlnFn("Usage: view <documents|storage>")
				continue
			}
			_ = a.SwitchView(ctx, arg)
			continue
		case "docs", "storage":
			_ = a.SwitchView(ctx, cmd)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if views.Active() == models.ViewStorage {
			dispatchStorage(ctx, a, cmd, arg)
		} else {
			dispatchDocuments(ctx, a, cmd, arg)
		}
	}
}

func dispatchDocuments(ctx context.Context, a execIface, cmd, arg string) {
	switch cmd {
	case "l", "list":
		_ = a.List(ctx)
	case "upload":
		if requireArg(cmd, arg, "<path>") {
			_ = a.Upload(ctx, arg)
		}
	case "summary":
		if requireArg(cmd, arg, "<file>") {
			_ = a.Summary(ctx, arg)
		}
	case "summarize":
		if requireArg(cmd, arg, "<file>") {
			_ = a.Summarize(ctx, arg)
		}
	case "search":
		_ = a.Search(ctx, arg)
	case "delete":
		if requireArg(cmd, arg, "<file>") {
			_ = a.Delete(ctx, arg)
		}
	case "dismiss":
		_ = a.Dismiss(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchStorage(ctx context.Context, a execIface, cmd, arg string) {
	switch cmd {
	case "l", "list":
		_ = a.List(ctx)
	case "show":
		if requireArg(cmd, arg, "<file>") {
			_ = a.Show(ctx, arg)
		}
	case "stat":
		if requireArg(cmd, arg, "<file>") {
			_ = a.Stat(ctx, arg)
		}
	case "text":
		_ = a.Text(ctx)
	case "open":
		_ = a.Open(ctx)
	case "url":
		_ = a.URL(ctx)
	case "download":
		_ = a.Download(ctx, arg)
	case "close":
		_ = a.Close(ctx)
	case "dismiss":
		_ = a.Dismiss(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

type readResult struct {
	line string
	err  error
}

// readLine reads one line from reader, giving up when ctx is done. The
// abandoned read stays blocked on the reader, so callers must not read
// from it again after a context error.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// splitCommand returns the first word and the rest of the line, so file
// names and queries may contain spaces.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	cmd, rest, _ := strings.Cut(line, " ")
	return cmd, strings.TrimSpace(rest)
}

func requireArg(cmd, arg, what string) bool {
	if arg == "" {
		printlnFn(fmt.Sprintf("Usage: %s %s", cmd, what))
		return false
	}
	return true
}

func viewLabel(v models.ActiveView) string {
	if v == models.ViewStorage {
		return "storage"
	}
	return "documents"
}
