package dto

import (
	"time"

	"mangaist/internal/http-api/models"
)

// CreatePanelDTO carries the multipart form fields of a panel upload; the
// image itself travels as the "image" file part and is required.
type CreatePanelDTO struct {
	Description   *string `form:"description"`
	MangaID       *int64  `form:"manga_id"`
	ChapterNumber *int    `form:"chapter_number" binding:"omitempty,gte=0"`
	VolumeNumber  *int    `form:"volume_number" binding:"omitempty,gte=0"`
}

// UpdatePanelDTO is a partial patch; a replacement image is optional.
type UpdatePanelDTO struct {
	Description   *string `form:"description"`
	MangaID       *int64  `form:"manga_id"`
	ChapterNumber *int    `form:"chapter_number" binding:"omitempty,gte=0"`
	VolumeNumber  *int    `form:"volume_number" binding:"omitempty,gte=0"`
}

func (d UpdatePanelDTO) ApplyTo(p *models.FavoritePanel) {
	if d.Description != nil {
		p.Description = d.Description
	}
	if d.MangaID != nil {
		p.MangaID = d.MangaID
	}
	if d.ChapterNumber != nil {
		p.ChapterNumber = d.ChapterNumber
	}
	if d.VolumeNumber != nil {
		p.VolumeNumber = d.VolumeNumber
	}
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type PanelCommentResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeResponse struct {
	PanelID   int64 `json:"panel_id"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type PanelResponse struct {
	ID            int64                  `json:"id"`
	UserID        string                 `json:"user_id"`
	PanelImage    string                 `json:"panel_image"`
	Description   *string                `json:"description,omitempty"`
	MangaID       *int64                 `json:"manga_id,omitempty"`
	ChapterNumber *int                   `json:"chapter_number,omitempty"`
	VolumeNumber  *int                   `json:"volume_number,omitempty"`
	Likes         []string               `json:"likes"`
	Comments      []PanelCommentResponse `json:"comments"`
	CreatedAt     time.Time              `json:"created_at"`
}

func FromModelToPanelResponse(p models.FavoritePanel) PanelResponse {
	likes := make([]string, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, l.UserID)
	}
	comments := make([]PanelCommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, PanelCommentResponse{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return PanelResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		PanelImage:    p.PanelImage,
		Description:   p.Description,
		MangaID:       p.MangaID,
		ChapterNumber: p.ChapterNumber,
		VolumeNumber:  p.VolumeNumber,
		Likes:         likes,
		Comments:      comments,
		CreatedAt:     p.CreatedAt,
	}
}
