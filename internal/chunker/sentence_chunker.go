package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"helpdesk/internal/domain"
)

// DefaultMaxSize is the chunk size, in characters, used when none is configured.
const DefaultMaxSize = 500

// SentenceChunker packs whole sentences into chunks of at most maxSize characters.
type SentenceChunker struct {
	maxSize int
}

func NewSentenceChunker(maxSize int) *SentenceChunker {
	if maxSize < 1 {
		maxSize = DefaultMaxSize
	}
	return &SentenceChunker{maxSize: maxSize}
}

// MaxSize returns the effective chunk size limit.
func (c *SentenceChunker) MaxSize() int { return c.maxSize }

// Chunk splits text and numbers the chunks by position.
func (c *SentenceChunker) Chunk(text string) []domain.Chunk {
	parts := Chunk(text, c.maxSize)
	chunks := make([]domain.Chunk, len(parts))
	for i, p := range parts {
		chunks[i] = domain.Chunk{ID: i, Text: p}
	}
	return chunks
}

// Chunk greedily accumulates sentences into chunks no longer than maxSize
// characters. A sentence that alone exceeds maxSize becomes its own chunk
// and is never split.
func Chunk(text string, maxSize int) []string {
	if maxSize < 1 {
		maxSize = DefaultMaxSize
	}
	var (
		chunks  []string
		buf     strings.Builder
		bufSize int
	)
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			chunks = append(chunks, s)
		}
		buf.Reset()
		bufSize = 0
	}
	for _, unit := range SplitSentences(text) {
		size := utf8.RuneCountInString(unit)
		if bufSize > 0 && bufSize+1+size > maxSize {
			flush()
		}
		if bufSize > 0 {
			buf.WriteByte(' ')
			bufSize++
		}
		buf.WriteString(unit)
		bufSize += size
	}
	flush()
	return chunks
}

// SplitSentences splits text after runs of '.', '?' or '!' that are followed
// by whitespace or the end of the text, and at blank lines. Terminators stay
// with their sentence; returned units are trimmed and never empty.
func SplitSentences(text string) []string {
	var units []string
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			units = append(units, s)
		}
	}
	start := 0
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		switch {
		case isTerminator(r):
			j := i + w
			for j < len(text) {
				r2, w2 := utf8.DecodeRuneInString(text[j:])
				if !isTerminator(r2) {
					break
				}
				j += w2
			}
			if j == len(text) {
				emit(text[start:j])
				start = j
			} else if r2, _ := utf8.DecodeRuneInString(text[j:]); unicode.IsSpace(r2) {
				emit(text[start:j])
				start = j
			}
			i = j
		case r == '\n':
			if end, ok := blankLineEnd(text, i+w); ok {
				emit(text[start:i])
				start = end
				i = end
				continue
			}
			i += w
		default:
			i += w
		}
	}
	emit(text[start:])
	return units
}

func isTerminator(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

// blankLineEnd reports whether the text from pos onwards starts with optional
// horizontal whitespace followed by a newline, and where that newline ends.
func blankLineEnd(text string, pos int) (int, bool) {
	for j := pos; j < len(text); j++ {
		switch text[j] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return j + 1, true
		default:
			return 0, false
		}
	}
	return 0, false
}
