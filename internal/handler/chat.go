package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movierental/backend/internal/middleware"
	"github.com/movierental/backend/internal/model"
	"github.com/movierental/backend/internal/repository"
	"github.com/movierental/backend/internal/service"
)

// ChatHandler serves the support-chat endpoints. A user starts a chat,
// an employee accepts it (first accept wins), and both sides append
// messages. Each mutation is also broadcast over the message broker on a
// best-effort basis: a publish failure is logged and the request still
// succeeds.
type ChatHandler struct {
	Chats ChatStore
}

func NewChatHandler(chats ChatStore) *ChatHandler {
	return &ChatHandler{Chats: chats}
}

type chatMessageReq struct {
	Message string `json:"message" validate:"required"`
}

// Start handles POST /api/chats/start. The chat is created pending with
// the first message already in its log.
func (h *ChatHandler) Start(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	var req chatMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
	}

	chatID, err := h.Chats.Create(c.Request().Context(), id.UserID, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to start chat"})
	}

	if err := service.PublishChatMessage(c.Request().Context(), chatID, model.RoleUser, req.Message); err != nil {
		log.Printf("chat %d: message broadcast skipped: %v", chatID, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"chatId": chatID})
}

// Pending handles GET /api/chats/pending (employee only; the role gate
// lives in the router).
func (h *ChatHandler) Pending(c echo.Context) error {
	chats, err := h.Chats.ListPending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch chats"})
	}
	return c.JSON(http.StatusOK, chats)
}

// Accepted handles GET /api/chats/accepted, listing the chats the
// calling employee has taken on.
func (h *ChatHandler) Accepted(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	chats, err := h.Chats.ListAcceptedByAdmin(c.Request().Context(), id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch chats"})
	}
	return c.JSON(http.StatusOK, chats)
}

// Accept handles POST /api/chats/:id/accept. The store performs one
// conditional update matched on (id, status=pending), so of two
// concurrent accepts exactly one succeeds and the loser gets 409.
func (h *ChatHandler) Accept(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	chatID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Chats.Accept(c.Request().Context(), chatID, id.UserID); err != nil {
		if errors.Is(err, repository.ErrChatConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Chat not found or already accepted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to accept chat"})
	}

	if err := service.PublishChatAccepted(c.Request().Context(), chatID, id.UserID); err != nil {
		log.Printf("chat %d: accept broadcast skipped: %v", chatID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Chat accepted"})
}

// Message handles POST /api/chats/:id/message. The sender side is
// derived from the token role; appends are allowed in both pending and
// accepted chats.
func (h *ChatHandler) Message(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	chatID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req chatMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
	}

	sender := model.RoleUser
	if id.Role == model.RoleEmployee {
		sender = model.RoleEmployee
	}
	if err := h.Chats.AddMessage(c.Request().Context(), chatID, sender, req.Message); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Chat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send message"})
	}

	if err := service.PublishChatMessage(c.Request().Context(), chatID, sender, req.Message); err != nil {
		log.Printf("chat %d: message broadcast skipped: %v", chatID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Message sent"})
}

// Get handles GET /api/chats/:id, returning the chat with its full
// message log in append order.
func (h *ChatHandler) Get(c echo.Context) error {
	chatID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	chat, err := h.Chats.GetByID(c.Request().Context(), chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Chat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch chat"})
	}
	return c.JSON(http.StatusOK, chat)
}
