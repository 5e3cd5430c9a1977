package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/service"
)

type AuthHandler struct {
	svc            service.AuthService
	accessTokenTTL time.Duration
}

func NewAuthHandler(svc service.AuthService, accessTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, accessTokenTTL: accessTokenTTL}
}

// RegisterRoutes mounts the public authentication routes. Everything here is
// reachable without a bearer token.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth0-callback", h.Callback)
	rg.POST("/refresh", h.Refresh)
	rg.POST("/revoke", h.Revoke)
}

// Callback exchanges an externally issued id_token for internal tokens,
// creating the account on first sight.
func (h *AuthHandler) Callback(c *gin.Context) {
	var req dto.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	accessToken, refreshToken, user, err := h.svc.HandleCallback(ctx, req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIdentityToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.accessTokenTTL.Seconds()),
		User:         dto.FromModelToPublicUser(*user),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	accessToken, refreshToken, err := h.svc.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.accessTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) Revoke(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RevokeToken(ctx, req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.RevokeTokenResponse{Message: "token revoked"})
}
