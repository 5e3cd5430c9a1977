package dto

import (
	"time"

	"mangaist/internal/http-api/models"
)

// AddToCatalogRequest adds an existing manga by id, or creates a personal
// manga from a full payload. Exactly one of the two must be set; the handler
// rejects requests carrying both or neither.
type AddToCatalogRequest struct {
	MangaID *int64          `json:"manga_id,omitempty"`
	Manga   *CreateMangaDTO `json:"manga,omitempty"`
}

// UpdateProgressRequest overwrites the two progress fields of a catalog
// entry. No upper bound is enforced against the manga's listed totals:
// scanlation chapters routinely run past the official count.
type UpdateProgressRequest struct {
	CurrentChapter *int    `json:"current_chapter" binding:"required,gte=0"`
	CurrentVolume  *int    `json:"current_volume" binding:"required,gte=0"`
	ReadingStatus  *string `json:"reading_status,omitempty" binding:"omitempty,oneof=to-read reading completed"`
}

type CatalogEntryResponse struct {
	ID             int64          `json:"id"`
	MangaID        int64          `json:"manga_id"`
	ReadingStatus  string         `json:"reading_status"`
	CurrentChapter int            `json:"current_chapter"`
	CurrentVolume  int            `json:"current_volume"`
	AddedAt        time.Time      `json:"added_at"`
	Manga          *MangaResponse `json:"manga,omitempty"`
}

type CatalogListResponse struct {
	Items []CatalogEntryResponse `json:"items"`
	Total int                    `json:"total"`
}

func FromModelToCatalogEntryResponse(e models.CatalogEntry) CatalogEntryResponse {
	resp := CatalogEntryResponse{
		ID:             e.ID,
		MangaID:        e.MangaID,
		ReadingStatus:  e.ReadingStatus,
		CurrentChapter: e.CurrentChapter,
		CurrentVolume:  e.CurrentVolume,
		AddedAt:        e.AddedAt,
	}
	if e.Manga != nil {
		m := FromModelToMangaResponse(*e.Manga)
		resp.Manga = &m
	}
	return resp
}
