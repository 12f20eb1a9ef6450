// Package index holds the lexical relevance index over the corpus chunks.
// An Index is built once at startup and only read afterwards.
package index

import (
	"helpdesk/internal/domain"
	"helpdesk/internal/embedding"
	"helpdesk/internal/embedding/tfidf"
	"helpdesk/internal/vectorstore"
	"helpdesk/internal/vectorstore/memory"
)

const (
	DefaultTopK     = 3
	DefaultMinScore = 0.1
)

// Index answers "most similar chunks" queries over a fixed chunk list.
type Index struct {
	chunks   []domain.Chunk
	embedder embedding.Embedder
	store    vectorstore.Storage
}

var _ domain.Retriever = (*Index)(nil)

// Build fits the TF-IDF model on chunks and stores one normalised row per
// chunk. Building twice from the same chunks yields identical scores.
func Build(chunks []domain.Chunk) *Index {
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	model := tfidf.Fit(texts)
	vectors := make([]embedding.Vector, len(chunks))
	for i, text := range texts {
		vectors[i] = model.Embed(text)
	}
	// lengths match by construction
	store, _ := memory.New(chunks, vectors)
	owned := make([]domain.Chunk, len(chunks))
	copy(owned, chunks)
	return &Index{chunks: owned, embedder: model, store: store}
}

// Retrieve returns up to topK chunks scoring strictly above minScore,
// ordered by descending cosine similarity and then ascending chunk ID.
// A nil or empty index always returns nothing.
func (ix *Index) Retrieve(query string, topK int, minScore float64) []domain.SearchResult {
	if ix == nil || ix.store == nil || ix.embedder.Dimension() == 0 {
		return nil
	}
	return ix.store.Search(ix.embedder.Embed(query), topK, minScore)
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Vocabulary returns the number of distinct indexed terms.
func (ix *Index) Vocabulary() int {
	if ix == nil || ix.embedder == nil {
		return 0
	}
	return ix.embedder.Dimension()
}

// Chunks returns a copy of the indexed chunks.
func (ix *Index) Chunks() []domain.Chunk {
	if ix == nil {
		return nil
	}
	out := make([]domain.Chunk, len(ix.chunks))
	copy(out, ix.chunks)
	return out
}
