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

type PanelHandler struct {
	svc   service.PanelService
	media *storage.MediaStore
}

func NewPanelHandler(svc service.PanelService, media *storage.MediaStore) *PanelHandler {
	return &PanelHandler{svc: svc, media: media}
}

// RegisterRoutes mounts the panel routes under the /users group. The
// /panels subtree is shared: any authenticated user can fetch, like and
// comment there.
func (h *PanelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/favoritePanels", h.Create)
	rg.GET("/:id/favoritePanels/:panelId", h.GetForUser)
	rg.PATCH("/:id/favoritePanels/:panelId", h.Update)
	rg.DELETE("/:id/favoritePanels/:panelId", h.Delete)

	rg.GET("/panels/:panelId", h.Get)
	rg.POST("/panels/:panelId/like", h.ToggleLike)
	rg.POST("/panels/:panelId/comment", h.AddComment)
}

func respondPanelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPanelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "panel not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func panelID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("panelId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid panel id"})
		return 0, false
	}
	return id, true
}

// Create stores a new favorite panel. The image part is mandatory.
func (h *PanelHandler) Create(c *gin.Context) {
	var in dto.CreatePanelDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "panel image is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	url, err := saveImage(ctx, h.media, header, "panels")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.Create(ctx, middleware.CallerFrom(c), c.Param("id"), url, in)
	if err != nil {
		deleteByURL(ctx, h.media, url)
		respondPanelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PanelHandler) Get(c *gin.Context) {
	id, ok := panelID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Get(ctx, id)
	if err != nil {
		respondPanelError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PanelHandler) GetForUser(c *gin.Context) {
	id, ok := panelID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.GetForUser(ctx, c.Param("id"), id)
	if err != nil {
		respondPanelError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PanelHandler) Update(c *gin.Context) {
	id, ok := panelID(c)
	if !ok {
		return
	}

	var in dto.UpdatePanelDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var newImageURL *string
	header, err := formImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if header != nil {
		url, err := saveImage(ctx, h.media, header, "panels")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newImageURL = &url
	}

	resp, err := h.svc.Update(ctx, middleware.CallerFrom(c), c.Param("id"), id, in, newImageURL)
	if err != nil {
		if newImageURL != nil {
			deleteByURL(ctx, h.media, *newImageURL)
		}
		respondPanelError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PanelHandler) Delete(c *gin.Context) {
	id, ok := panelID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	imageURL, err := h.svc.Delete(ctx, middleware.CallerFrom(c), c.Param("id"), id)
	if err != nil {
		respondPanelError(c, err)
		return
	}
	deleteByURL(ctx, h.media, imageURL)

	c.JSON(http.StatusOK, gin.H{"message": "panel deleted"})
}

func (h *PanelHandler) ToggleLike(c *gin.Context) {
	id, ok := panelID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.ToggleLike(ctx, middleware.CallerFrom(c), id)
	if err != nil {
		respondPanelError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PanelHandler) AddComment(c *gin.Context) {
	id, ok := panelID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.AddComment(ctx, middleware.CallerFrom(c), id, req.Text)
	if err != nil {
		respondPanelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
