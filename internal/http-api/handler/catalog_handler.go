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

type CatalogHandler struct {
	svc   service.CatalogService
	media *storage.MediaStore
}

func NewCatalogHandler(svc service.CatalogService, media *storage.MediaStore) *CatalogHandler {
	return &CatalogHandler{svc: svc, media: media}
}

// RegisterRoutes mounts the catalog routes under the /users group.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/manga", h.List)
	rg.POST("/:id/manga", h.Add)
	rg.GET("/:id/manga/:mangaId", h.Get)
	rg.PATCH("/:id/manga/:mangaId/progress", h.UpdateProgress)
	rg.DELETE("/:id/manga/:mangaId", h.Remove)
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrMangaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "manga not found"})
	case errors.Is(err, service.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "manga not in catalog"})
	case errors.Is(err, service.ErrAlreadyInCatalog):
		c.JSON(http.StatusConflict, gin.H{"error": "manga already in catalog"})
	case errors.Is(err, service.ErrInvalidCatalogBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func catalogMangaID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("mangaId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manga id"})
		return 0, false
	}
	return id, true
}

// Add accepts either a JSON body referencing an existing manga (or carrying a
// full manga payload), or a multipart form with the manga fields plus an
// optional "cover" image part.
func (h *CatalogHandler) Add(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var req dto.AddToCatalogRequest
	if c.ContentType() == "multipart/form-data" {
		var manga dto.CreateMangaDTO
		if err := c.ShouldBind(&manga); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
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
			manga.CoverImage = &url
		}
		req.Manga = &manga
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.Add(ctx, middleware.CallerFrom(c), c.Param("id"), req)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.List(ctx, middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := catalogMangaID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Get(ctx, middleware.CallerFrom(c), c.Param("id"), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) UpdateProgress(c *gin.Context) {
	id, ok := catalogMangaID(c)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.UpdateProgress(ctx, middleware.CallerFrom(c), c.Param("id"), id, req)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Remove(c *gin.Context) {
	id, ok := catalogMangaID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, middleware.CallerFrom(c), c.Param("id"), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed from catalog"})
}
