// README: Kiosk chat handler: one conversational turn per request.
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/assistant"
	"github.com/Alfredcrmn/hardware-kiosk/internal/modules/session"
	"github.com/Alfredcrmn/hardware-kiosk/internal/types"
)

const turnTimeout = 20 * time.Second

type ChatHandler struct {
	assistant *assistant.Service
	sessions  *session.Store
}

func NewChatHandler(assistantSvc *assistant.Service, sessions *session.Store) *ChatHandler {
	return &ChatHandler{assistant: assistantSvc, sessions: sessions}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Cart      []struct {
		SKU string `json:"sku"`
		Qty int    `json:"qty"`
	} `json:"cart"`
}

type chatResp struct {
	SessionID string         `json:"session_id"`
	Reply     string         `json:"reply"`
	Plan      assistant.Plan `json:"plan"`
}

// Chat handles POST /api/kiosk/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	} else if !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}
	sessionID := types.ID(req.SessionID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	history, err := h.sessions.History(ctx, sessionID, assistant.DefaultHistoryWindow)
	if err != nil {
		// The transcript is a convenience cache; a miss must not kill the turn.
		log.Printf("session history unavailable for %s: %v", sessionID, err)
	}

	in := assistant.ChatInput{Utterance: req.Message}
	for _, t := range history {
		in.History = append(in.History, assistant.Turn{Role: t.Role, Text: t.Text})
	}
	for _, item := range req.Cart {
		if item.SKU == "" {
			continue
		}
		in.Cart = append(in.Cart, assistant.CartItem{SKU: item.SKU, Qty: item.Qty})
	}

	result, err := h.assistant.Chat(ctx, in)
	if err != nil {
		// Candidate search is the only fatal collaborator for a turn.
		writeError(c, http.StatusBadGateway, "catalog unavailable")
		return
	}

	if err := h.sessions.AppendTurns(ctx, sessionID,
		session.Turn{Role: "user", Text: req.Message},
		session.Turn{Role: "assistant", Text: result.Reply},
	); err != nil {
		log.Printf("session append failed for %s: %v", sessionID, err)
	}
	cart := make([]session.CartItem, 0, len(in.Cart))
	for _, item := range in.Cart {
		cart = append(cart, session.CartItem{SKU: item.SKU, Qty: item.Qty})
	}
	if err := h.sessions.SaveCart(ctx, sessionID, cart); err != nil {
		log.Printf("session cart save failed for %s: %v", sessionID, err)
	}

	writeJSON(c, http.StatusOK, chatResp{
		SessionID: req.SessionID,
		Reply:     result.Reply,
		Plan:      result.Plan,
	})
}

// History handles GET /api/kiosk/sessions/:id/history.
func (h *ChatHandler) History(c *gin.Context) {
	id := c.Param("id")
	if !isValidSessionID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	turns, err := h.sessions.History(c.Request.Context(), types.ID(id), 50)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if turns == nil {
		turns = []session.Turn{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"session_id": id, "history": turns})
}
