// Package org renders source documents into org outline files.
package org

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"readwise2org/internal/logger"
	"readwise2org/internal/models"
)

// unsafeChars matches every character that may not appear in an output
// filename. Each match is replaced individually with a hyphen.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// SanitizeTitle converts a document title into a filesystem-safe slug.
func SanitizeTitle(title string) string {
	return unsafeChars.ReplaceAllString(title, "-")
}

// Filename returns the output filename for a document title.
func Filename(title string) string {
	return SanitizeTitle(title) + ".org"
}

// LastUpdated derives the LAST-UPDATED value from the highlights: the
// maximum updated_at timestamp, with the T separator replaced by a space
// and truncated to second precision. ISO-8601 strings order correctly
// under plain string comparison, so no time parsing is needed. Returns
// the empty string when there are no highlights.
func LastUpdated(highlights []models.Highlight) string {
	max := ""
	for _, h := range highlights {
		if h.UpdatedAt > max {
			max = h.UpdatedAt
		}
	}
	if max == "" {
		return ""
	}

	s := strings.Replace(max, "T", " ", 1)
	if len(s) > 19 {
		s = s[:19]
	}
	return s
}

// Render converts one document and its highlights into the outline text.
// The output is a pure function of the document payload, so re-rendering
// identical input yields byte-identical text.
func Render(book *models.Book) string {
	var b strings.Builder

	// File-level property drawer and title
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %d\n", book.ID)
	if book.Author != "" {
		fmt.Fprintf(&b, ":AUTHOR: %s\n", newlines.Replace(book.Author))
	}
	if book.SourceURL != "" {
		fmt.Fprintf(&b, ":URL: %s\n", book.SourceURL)
	}
	if updated := LastUpdated(book.Highlights); updated != "" {
		fmt.Fprintf(&b, ":LAST-UPDATED: %s\n", updated)
	}
	b.WriteString(":END:\n")
	fmt.Fprintf(&b, "#+title: %s\n", book.Title)

	if book.Summary != "" {
		b.WriteString("\n* Summary\n")
		b.WriteString(book.Summary + "\n")
	}

	for i := range book.Highlights {
		h := &book.Highlights[i]

		fmt.Fprintf(&b, "\n* Highlight %d\n", h.ID)
		b.WriteString(":PROPERTIES:\n")
		fmt.Fprintf(&b, ":ID: %d\n", h.ID)
		if h.URL != "" {
			fmt.Fprintf(&b, ":URL: %s\n", h.URL)
		}
		b.WriteString(":END:\n")
		fmt.Fprintf(&b, "%s ([[%s][View Highlight]])\n", h.Text, h.ReadwiseURL)

		if h.Note != "" {
			b.WriteString("** Note\n")
			b.WriteString(":PROPERTIES:\n")
			fmt.Fprintf(&b, ":ID: %d-note\n", h.ID)
			b.WriteString(":END:\n")
			b.WriteString(h.Note + "\n")
		}
	}

	return b.String()
}

// WriteDocument renders the document and writes it to path, replacing any
// prior contents.
func WriteDocument(path string, book *models.Book) error {
	if err := os.WriteFile(path, []byte(Render(book)), 0644); err != nil {
		return fmt.Errorf("write outline file: %w", err)
	}

	logger.Debug("wrote outline file", map[string]interface{}{
		"path":       path,
		"highlights": len(book.Highlights),
	})

	return nil
}
