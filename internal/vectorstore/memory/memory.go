package memory

import (
	"errors"
	"sort"

	"helpdesk/internal/domain"
	"helpdesk/internal/embedding"
)

// Storage is an immutable in-memory vector store using brute-force cosine
// similarity. Rows are expected to be L2-normalised. It is never mutated
// after New, so concurrent searches need no locking.
type Storage struct {
	chunks  []domain.Chunk
	vectors []embedding.Vector
}

// New stores one vector per chunk.
func New(chunks []domain.Chunk, vectors []embedding.Vector) (*Storage, error) {
	if len(chunks) != len(vectors) {
		return nil, errors.New("chunks and vectors length mismatch")
	}
	s := &Storage{
		chunks:  make([]domain.Chunk, len(chunks)),
		vectors: make([]embedding.Vector, len(vectors)),
	}
	copy(s.chunks, chunks)
	copy(s.vectors, vectors)
	return s, nil
}

// Len returns the number of stored rows.
func (s *Storage) Len() int { return len(s.chunks) }

// Search returns up to topK chunks whose similarity to vector is strictly
// greater than minScore, by descending score. Equal scores are ordered by
// ascending chunk ID.
func (s *Storage) Search(vector embedding.Vector, topK int, minScore float64) []domain.SearchResult {
	if topK <= 0 || len(s.chunks) == 0 || vector.IsZero() {
		return nil
	}
	var results []domain.SearchResult
	for i, row := range s.vectors {
		score := row.Dot(vector)
		if score <= minScore {
			continue
		}
		results = append(results, domain.SearchResult{Chunk: s.chunks[i], Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
