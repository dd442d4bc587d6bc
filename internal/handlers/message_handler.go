package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/services"
	"github.com/frekans/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct message HTTP requests
type MessageHandler struct {
	messagingGate *services.MessagingGate
	metrics       *metrics.Metrics
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messagingGate *services.MessagingGate, m *metrics.Metrics) *MessageHandler {
	return &MessageHandler{
		messagingGate: messagingGate,
		metrics:       m,
	}
}

// RegisterMessageRoutes registers messaging-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/:a/:b", h.GetConversation)
}

// SendMessage sends a direct message from the authenticated caller
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.messagingGate.SendMessage(c.Request().Context(), currentUserID, req.ReceiverID, req.MessageText, req.Metadata)
	if err != nil {
		if h.metrics != nil && errors.Is(err, services.ErrUnauthorized) {
			h.metrics.MessagesBlocked.Inc()
		}
		return translateServiceError(err)
	}

	if h.metrics != nil {
		h.metrics.MessagesSent.Inc()
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": message})
}

// GetConversation returns the message history between two users, oldest first
func (h *MessageHandler) GetConversation(c echo.Context) error {
	userA, err := strconv.ParseUint(c.Param("a"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	userB, err := strconv.ParseUint(c.Param("b"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
	}

	messages, err := h.messagingGate.GetConversation(c.Request().Context(), uint(userA), uint(userB), limit)
	if err != nil {
		return translateServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": messages})
}
