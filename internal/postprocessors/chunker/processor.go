// Package chunker provides a sentence-based text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
)

// DefaultTargetSize is the default number of characters per chunk.
const DefaultTargetSize = 500

// DefaultOverlap is the default number of overlapping characters
// carried from the tail of one chunk into the next.
const DefaultOverlap = 100

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// Processor splits document content into sentence-aligned chunks.
// Sentences are accumulated greedily until the target size would be
// exceeded; each new chunk is seeded with the trailing words of the
// previous one, so the overlap is approximate rather than an exact
// character count.
type Processor struct {
	targetSize int
	overlap    int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithTargetSize sets the chunk target size in characters.
func WithTargetSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.targetSize = size
		}
	}
}

// WithOverlap sets the approximate overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		targetSize: DefaultTargetSize,
		overlap:    DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed target size
	if p.overlap >= p.targetSize {
		p.overlap = p.targetSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "sentence-chunker"
}

// Chunk splits the document content into ordered chunks.
// Non-empty content always produces at least one chunk; degenerate
// input with no sentence delimiters becomes a single chunk holding
// the full text.
func (p *Processor) Chunk(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	sentences := splitSentences(doc.Content)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(doc.Content)
		if trimmed == "" {
			return nil, nil
		}
		sentences = []string{trimmed}
	}

	var chunks []domain.Chunk
	current := ""

	emit := func(text string) {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    text,
			Index:      len(chunks),
			Length:     len(text),
		})
	}

	for _, sentence := range sentences {
		if current != "" && len(current)+1+len(sentence) > p.targetSize {
			emit(current)
			// Seed the next chunk with the tail of the previous one
			// plus the sentence that triggered the split.
			current = tailWords(current, p.overlap)
			if current != "" {
				current += " "
			}
			current += sentence
			continue
		}
		if current != "" {
			current += " "
		}
		current += sentence
	}

	if strings.TrimSpace(current) != "" {
		emit(current)
	}

	return chunks, nil
}

// splitSentences splits content into sentence-like units.
// Terminators are kept attached to their sentence. A terminator only
// ends a sentence when followed by whitespace or end of text, so
// dotted tokens like email addresses stay intact.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(content)
	for i, r := range runes {
		current.WriteRune(r)

		terminal := false
		switch r {
		case '\n':
			terminal = true
		case '.', '!', '?':
			terminal = i+1 >= len(runes) || isSpace(runes[i+1])
		}

		if terminal {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// tailWords returns whole trailing words of s totalling roughly
// maxChars characters.
func tailWords(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	words := strings.Fields(s)
	total := 0
	start := len(words)
	for i := len(words) - 1; i >= 0; i-- {
		total += len(words[i]) + 1
		if total > maxChars {
			break
		}
		start = i
	}
	return strings.Join(words[start:], " ")
}
