package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/middleware"
	"mangaist/internal/http-api/service"
)

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Send)
	rg.GET("/conversations", h.Conversations)
	rg.GET("/:userId", h.GetWithUser)
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot message yourself"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Send(ctx, middleware.CallerFrom(c), req.RecipientID, req.Content)
	if err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MessageHandler) Conversations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Conversations(ctx, middleware.CallerFrom(c))
	if err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp, "total": len(resp)})
}

func (h *MessageHandler) GetWithUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.GetWithUser(ctx, middleware.CallerFrom(c), c.Param("userId"))
	if err != nil {
		respondMessageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp, "total": len(resp)})
}
