// Package cli provides the interactive docdesk command-line client.
//
// It wires configuration, the backend API client, the storage driver and the
// two view controllers, and runs an interactive REPL on top of them. The
// active view lives in a viewstate.Store carried by the context.
//
// Key features:
//   - Documents view: list, upload, view or regenerate summaries, semantic
//     search, delete with confirmation
//   - Storage view: browse the bucket, preview PDFs as text, open signed
//     links in a browser, download any object
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and execIface for details.
package cli
