// Package pdfx pulls plain text out of PDF documents for terminal preview.
package pdfx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

var ErrNotPDF = errors.New("not a PDF document")

type Text struct {
	Content   string
	Pages     int
	Truncated bool
}

// ExtractText reads every page of a PDF held in memory. Pages that fail to
// decode are skipped. When maxRunes > 0 the content is cut at that many runes.
func ExtractText(data []byte, maxRunes int) (*Text, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return nil, ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	content, truncated := Truncate(Clean(sb.String()), maxRunes)
	return &Text{Content: content, Pages: pages, Truncated: truncated}, nil
}

// Clean drops control characters and collapses runs of blank lines.
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRightFunc(l, unicode.IsSpace)
		if l == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Truncate cuts s to at most n runes; n <= 0 means no limit.
func Truncate(s string, n int) (string, bool) {
	if n <= 0 {
		return s, false
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], true
		}
		i++
	}
	return s, false
}
