package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"helpdesk/internal/domain"
	"helpdesk/internal/logging"
)

//go:embed static/index.html
var indexPage []byte

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string        `json:"response"`
	Source   domain.Source `json:"source"`
}

// ChatHandler serves the chat page and the chat API.
type ChatHandler struct {
	answerer domain.Answerer
}

func NewChatHandler(answerer domain.Answerer) *ChatHandler {
	return &ChatHandler{answerer: answerer}
}

// Index renders the chat page.
func (h *ChatHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

// Chat answers {"query": "..."}. A missing or undecodable body is the empty
// query, so the caller always gets an answer.
func (h *ChatHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.FromContext(ctx, nil).Debug("unreadable chat body, treating as empty query", zap.Error(err))
	}
	a := h.answerer.Answer(ctx, req.Query)
	c.JSON(http.StatusOK, chatResponse{Response: a.Text, Source: a.Source})
}
