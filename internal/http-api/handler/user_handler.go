package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/middleware"
	"mangaist/internal/http-api/models"
	"mangaist/internal/http-api/service"
	"mangaist/internal/storage"
)

type UserHandler struct {
	svc   service.UserService
	media *storage.MediaStore
}

func NewUserHandler(svc service.UserService, media *storage.MediaStore) *UserHandler {
	return &UserHandler{svc: svc, media: media}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", middleware.RequireRole(models.RoleAdmin), h.List)
	rg.POST("", middleware.RequireRole(models.RoleAdmin), h.Create)
	rg.GET("/public", h.ListPublic)
	rg.GET("/public/:id", h.GetPublic)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.PATCH("/:id/profileImage", h.UploadProfileImage)
	rg.DELETE("/:id", h.Delete)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.List(ctx, middleware.CallerFrom(c), page, pageSize)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ListPublic(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.ListPublic(ctx)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp, "total": len(resp)})
}

// Get returns the full profile when the caller is allowed to see it and the
// public projection otherwise. Both outcomes are 200s.
func (h *UserHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	full, public, err := h.svc.Get(ctx, middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		respondUserError(c, err)
		return
	}
	if full != nil {
		c.JSON(http.StatusOK, full)
		return
	}
	c.JSON(http.StatusOK, public)
}

func (h *UserHandler) GetPublic(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.GetPublic(ctx, c.Param("id"))
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Create(ctx, middleware.CallerFrom(c), req)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	var in dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Update(ctx, middleware.CallerFrom(c), c.Param("id"), in)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	url, err := saveImage(ctx, h.media, header, "profiles")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.SetProfileImage(ctx, middleware.CallerFrom(c), c.Param("id"), url)
	if err != nil {
		deleteByURL(ctx, h.media, url)
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.CallerFrom(c), c.Param("id")); err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
