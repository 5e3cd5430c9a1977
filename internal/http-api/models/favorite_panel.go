package models

import "time"

// FavoritePanel is a user-owned saved manga page image with its social
// metadata. Only the owning user may mutate or delete the panel; likes and
// comments are open to any authenticated user.
type FavoritePanel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;index" json:"user_id"`
	PanelImage    string    `gorm:"not null" json:"panel_image"`
	Description   *string   `json:"description,omitempty"`
	MangaID       *int64    `gorm:"index" json:"manga_id,omitempty"`
	ChapterNumber *int      `json:"chapter_number,omitempty"`
	VolumeNumber  *int      `json:"volume_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Comments []PanelComment `gorm:"foreignKey:PanelID;constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
	Likes    []PanelLike    `gorm:"foreignKey:PanelID;constraint:OnDelete:CASCADE;" json:"likes,omitempty"`
}

func (FavoritePanel) TableName() string {
	return "favorite_panels"
}

// PanelComment is append-only from the API surface.
type PanelComment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PanelID   int64     `gorm:"not null;index" json:"panel_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	Text      string    `gorm:"not null;type:text" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PanelComment) TableName() string {
	return "panel_comments"
}

// PanelLike rows form the panel's likes set; the composite key makes the
// like toggle naturally idempotent.
type PanelLike struct {
	PanelID   int64     `gorm:"primaryKey" json:"panel_id"`
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PanelLike) TableName() string {
	return "panel_likes"
}
