package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/middleware"
	"mangaist/internal/http-api/service"
	"mangaist/internal/storage"
)

type MangaHandler struct {
	svc   service.MangaService
	media *storage.MediaStore
}

func NewMangaHandler(svc service.MangaService, media *storage.MediaStore) *MangaHandler {
	return &MangaHandler{svc: svc, media: media}
}

func (h *MangaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/coverImage", h.UploadCover)
	rg.POST("/:id/characters", h.AddCharacter)
	rg.PATCH("/:id/characters/:characterId", h.UpdateCharacter)
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	return page, pageSize
}

func mangaID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return 0, false
	}
	return id, true
}

// respondMangaError maps the manga service sentinels onto HTTP statuses.
func respondMangaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMangaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "manga not found"})
	case errors.Is(err, service.ErrCharacterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrDefaultManga):
		c.JSON(http.StatusForbidden, gin.H{"error": "default manga cannot be deleted"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *MangaHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.List(ctx, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MangaHandler) Get(c *gin.Context) {
	id, ok := mangaID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Get(ctx, id)
	if err != nil {
		respondMangaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create accepts JSON or a multipart form; the multipart form may carry an
// optional "cover" image part.
func (h *MangaHandler) Create(c *gin.Context) {
	var in dto.CreateMangaDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if c.ContentType() == "multipart/form-data" {
		header, err := formImage(c, "cover")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if header != nil {
			url, err := saveImage(ctx, h.media, header, "covers")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			in.CoverImage = &url
		}
	}

	resp, err := h.svc.Create(ctx, middleware.CallerFrom(c), in)
	if err != nil {
		respondMangaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MangaHandler) Update(c *gin.Context) {
	id, ok := mangaID(c)
	if !ok {
		return
	}

	var in dto.UpdateMangaDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Update(ctx, middleware.CallerFrom(c), id, in)
	if err != nil {
		respondMangaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MangaHandler) Delete(c *gin.Context) {
	id, ok := mangaID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	usersAffected, err := h.svc.Delete(ctx, middleware.CallerFrom(c), id)
	if err != nil {
		respondMangaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "manga deleted",
		"users_affected": usersAffected,
	})
}

func (h *MangaHandler) UploadCover(c *gin.Context) {
	id, ok := mangaID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cover file is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	url, err := saveImage(ctx, h.media, header, "covers")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.SetCoverImage(ctx, middleware.CallerFrom(c), id, url)
	if err != nil {
		deleteByURL(ctx, h.media, url)
		respondMangaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MangaHandler) AddCharacter(c *gin.Context) {
	id, ok := mangaID(c)
	if !ok {
		return
	}

	var in dto.CharacterDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var imageURL *string
	if c.ContentType() == "multipart/form-data" {
		header, err := formImage(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if header != nil {
			url, err := saveImage(ctx, h.media, header, "characters")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			imageURL = &url
		}
	}

	resp, err := h.svc.AddCharacter(ctx, middleware.CallerFrom(c), id, in.Name, imageURL)
	if err != nil {
		respondMangaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MangaHandler) UpdateCharacter(c *gin.Context) {
	id, ok := mangaID(c)
	if !ok {
		return
	}
	characterID, err := strconv.ParseInt(c.Param("characterId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid character id"})
		return
	}

	var in dto.UpdateCharacterDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var imageURL *string
	if c.ContentType() == "multipart/form-data" {
		header, err := formImage(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if header != nil {
			url, err := saveImage(ctx, h.media, header, "characters")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			imageURL = &url
		}
	}

	resp, err := h.svc.UpdateCharacter(ctx, middleware.CallerFrom(c), id, characterID, in.Name, imageURL)
	if err != nil {
		respondMangaError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
