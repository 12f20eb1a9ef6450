package vectorstore

import (
	"helpdesk/internal/domain"
	"helpdesk/internal/embedding"
)

// Storage holds chunk vectors and supports similarity search.
type Storage interface {
	Len() int
	Search(vector embedding.Vector, topK int, minScore float64) []domain.SearchResult
}
