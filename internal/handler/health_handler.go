package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexStats describes the lexical index for health reporting.
type IndexStats interface {
	Len() int
	Vocabulary() int
}

// HealthHandler reports whether answers can be grounded in the corpus.
type HealthHandler struct {
	stats    IndexStats
	provider string
}

func NewHealthHandler(stats IndexStats, provider string) *HealthHandler {
	return &HealthHandler{stats: stats, provider: provider}
}

func (h *HealthHandler) Health(c *gin.Context) {
	chunks, vocab := 0, 0
	if h.stats != nil {
		chunks, vocab = h.stats.Len(), h.stats.Vocabulary()
	}
	mode := "grounded"
	if chunks == 0 || vocab == 0 {
		mode = "ungrounded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"mode":       mode,
		"chunks":     chunks,
		"vocabulary": vocab,
		"provider":   h.provider,
	})
}
