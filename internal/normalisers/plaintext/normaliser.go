// Package plaintext normalises raw extracted text into a canonical
// document: format detection, preview truncation and a pattern scan
// for structured hints (emails, phone numbers, dates).
package plaintext

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
)

// maxHints caps the number of hints kept per kind.
const maxHints = 10

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	datePattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}[/.]\d{1,2}[/.]\d{2,4}`)
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise builds a Document from raw text.
func (n *Normaliser) Normalise(_ context.Context, name, path, content string) (*domain.Document, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, domain.ErrEmptyDocument
	}

	if name == "" {
		name = filepath.Base(path)
	}

	doc := &domain.Document{
		ID:         uuid.New().String(),
		Name:       name,
		Path:       path,
		Size:       int64(len(content)),
		Format:     detectFormat(name, path),
		Content:    text,
		Preview:    preview(text),
		Hints:      ExtractHints(text),
		IngestedAt: time.Now(),
	}

	return doc, nil
}

// ExtractHints scans text for email-like, phone-like and date-like
// strings. The hints bias fill suggestions toward values that actually
// appear in the corpus.
func ExtractHints(text string) domain.Hints {
	return domain.Hints{
		Emails: dedupe(emailPattern.FindAllString(text, -1)),
		Phones: dedupe(phonePattern.FindAllString(text, -1)),
		Dates:  dedupe(datePattern.FindAllString(text, -1)),
	}
}

// detectFormat derives the source format from the file extension.
func detectFormat(name, path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	if ext == "" {
		return "txt"
	}
	return ext
}

// preview returns a truncated slice of text for listings. The cut
// backs off to a rune boundary so a multi-byte character is never
// split.
func preview(text string) string {
	if len(text) <= domain.PreviewLength {
		return text
	}
	cut := domain.PreviewLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// dedupe removes duplicates preserving first-seen order, capped at maxHints.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == maxHints {
			break
		}
	}
	return out
}
