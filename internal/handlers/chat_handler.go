package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/chat"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
)

type ChatHandler struct {
	agent *chat.Agent
}

func NewChatHandler(agent *chat.Agent) *ChatHandler {
	return &ChatHandler{agent: agent}
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type chatResponse struct {
	SessionID string         `json:"session_id,omitempty"`
	State     chat.State     `json:"state"`
	Messages  []chat.Message `json:"messages"`
}

func (h *ChatHandler) StartSession(c *gin.Context) {
	s, msgs, err := h.agent.Start(c.Request.Context())
	if err != nil {
		respondError(c, err, "chat_failed", "Não foi possível iniciar a conversa.")
		return
	}

	httpresp.Created(c, chatResponse{
		SessionID: s.ID,
		State:     s.State,
		Messages:  msgs,
	})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Mensagem vazia.")
		return
	}

	s, msgs, err := h.agent.Send(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		respondError(c, err, "chat_failed", "Erro ao processar a mensagem.")
		return
	}

	httpresp.OK(c, chatResponse{
		State:    s.State,
		Messages: msgs,
	})
}
