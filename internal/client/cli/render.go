package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/services"
)

const (
	emptyDocuments = "No documents uploaded yet. Upload your first document to get started!"
	emptyStorage   = "No documents found in storage.\nMake sure the bucket %q is configured correctly."
)

func renderAlerts(w io.Writer, errMsg, success string) {
	if errMsg != "" {
		fmt.Fprintf(w, "✗ %s\n", errMsg)
	}
	if success != "" {
		fmt.Fprintf(w, "✓ %s\n", success)
	}
}

func renderFiles(w io.Writer, s services.DocumentState) {
	if s.Loading {
		fmt.Fprintln(w, "Loading files...")
		return
	}
	if len(s.Files) == 0 {
		fmt.Fprintln(w, emptyDocuments)
		return
	}

	title := fmt.Sprintf("Documents (%d)", len(s.Files))
	if s.Source != "" {
		title += " from " + s.Source
	}
	fmt.Fprintln(w, title)
	for i, name := range s.Files {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, name)
	}
}

func renderSearch(w io.Writer, s services.DocumentState) {
	if !s.Searched || s.Error != "" {
		return
	}

	n := len(s.Results)
	plural := "s"
	if n == 1 {
		plural = ""
	}
	fmt.Fprintf(w, "Found %d result%s\n", n, plural)

	for i, r := range s.Results {
		fmt.Fprintf(w, "  %d. %s\n", i+1, r.Document.Filename)
		if r.Preview != "" {
			fmt.Fprintf(w, "     %s\n", r.Preview)
		}
		fmt.Fprintf(w, "     Relevance: %s\n", models.FormatRelevance(r.Relevance))
	}
}

func renderSummary(w io.Writer, sv *services.SummaryView, width int) {
	if sv == nil {
		return
	}
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	rule := strings.Repeat("─", inner+2)

	fmt.Fprintf(w, "┌%s┐\n", rule)
	fmt.Fprintf(w, "  Document Summary: %s\n", sv.Filename)
	fmt.Fprintf(w, "├%s┤\n", rule)
	for _, line := range wrap(sv.Text, inner) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintf(w, "└%s┘\n", rule)
}

func renderStorage(w io.Writer, s services.StorageState, bucket string) {
	if s.Loading {
		fmt.Fprintln(w, "Loading documents...")
		return
	}
	if !s.Loaded {
		return
	}
	if len(s.Objects) == 0 {
		fmt.Fprintf(w, emptyStorage+"\n", bucket)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tCREATED\tPREVIEW")
	for _, o := range s.Objects {
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Local().Format("2006-01-02")
		}
		preview := "download only"
		if models.IsPDF(o.Name) {
			preview = "show"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Name, models.FormatSize(o.Size()), created, preview)
	}
	_ = tw.Flush()
}

func renderViewer(w io.Writer, s services.StorageState) {
	if s.LoadingViewer {
		fmt.Fprintln(w, "Loading PDF...")
		return
	}
	v := s.Viewer
	if v == nil {
		return
	}
	fmt.Fprintf(w, "Viewing %s\n", v.Filename)
	if !v.ExpiresAt.IsZero() {
		fmt.Fprintf(w, "  link valid until %s\n", v.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w, "  text: print contents · open: open in browser · url: print link · download: save · close")
}

func renderObject(w io.Writer, o *models.StorageObject) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", o.Name)
	fmt.Fprintf(tw, "Size:\t%s\n", models.FormatSize(o.Size()))
	if o.Metadata != nil && o.Metadata.Mimetype != "" {
		fmt.Fprintf(tw, "Type:\t%s\n", o.Metadata.Mimetype)
	}
	if !o.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if !o.UpdatedAt.IsZero() {
		fmt.Fprintf(tw, "Updated:\t%s\n", o.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

// wrap breaks text into lines of at most width runes at word boundaries.
// Existing line breaks are kept; words longer than width get a line of
// their own.
func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return out
}
