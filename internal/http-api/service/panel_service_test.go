package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/models"
)

func TestPanelCreate_OwnerOnly(t *testing.T) {
	repo := new(MockPanelRepository)
	svc := NewPanelService(repo)

	stranger := Caller{ID: "u2", Role: models.RoleUser}
	_, err := svc.Create(context.Background(), stranger, "u1", "http://img/panel.png", dto.CreatePanelDTO{})
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPanelCreate_StoresImageURL(t *testing.T) {
	repo := new(MockPanelRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.FavoritePanel) bool {
		return p.UserID == "u1" && p.PanelImage == "http://img/panel.png"
	})).Return(nil)

	svc := NewPanelService(repo)
	owner := Caller{ID: "u1", Role: models.RoleUser}

	resp, err := svc.Create(context.Background(), owner, "u1", "http://img/panel.png", dto.CreatePanelDTO{})
	require.NoError(t, err)
	assert.Equal(t, "http://img/panel.png", resp.PanelImage)
	repo.AssertExpectations(t)
}

func TestPanelGetForUser_WrongOwnerLooksLikeMissing(t *testing.T) {
	repo := new(MockPanelRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.FavoritePanel{ID: 5, UserID: "u1"}, nil)

	svc := NewPanelService(repo)

	_, err := svc.GetForUser(context.Background(), "u2", 5)
	assert.ErrorIs(t, err, ErrPanelNotFound)
}

func TestPanelUpdate_NonOwnerForbidden(t *testing.T) {
	repo := new(MockPanelRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.FavoritePanel{ID: 5, UserID: "u1"}, nil)

	svc := NewPanelService(repo)
	stranger := Caller{ID: "u2", Role: models.RoleUser}

	_, err := svc.Update(context.Background(), stranger, "u1", 5, dto.UpdatePanelDTO{}, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPanelDelete_ReturnsImageURL(t *testing.T) {
	repo := new(MockPanelRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.FavoritePanel{
		ID: 5, UserID: "u1", PanelImage: "http://img/panel.png",
	}, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)

	svc := NewPanelService(repo)
	owner := Caller{ID: "u1", Role: models.RoleUser}

	url, err := svc.Delete(context.Background(), owner, "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, "http://img/panel.png", url)
}

func TestToggleLike_AddsThenRemoves(t *testing.T) {
	repo := new(MockPanelRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.FavoritePanel{ID: 5, UserID: "u1"}, nil)

	// First call: no like yet, one gets added
	repo.On("HasLike", mock.Anything, int64(5), "u2").Return(false, nil).Once()
	repo.On("AddLike", mock.Anything, int64(5), "u2").Return(nil).Once()
	repo.On("CountLikes", mock.Anything, int64(5)).Return(int64(1), nil).Once()

	// Second call: like exists, it gets removed
	repo.On("HasLike", mock.Anything, int64(5), "u2").Return(true, nil).Once()
	repo.On("RemoveLike", mock.Anything, int64(5), "u2").Return(nil).Once()
	repo.On("CountLikes", mock.Anything, int64(5)).Return(int64(0), nil).Once()

	svc := NewPanelService(repo)
	liker := Caller{ID: "u2", Role: models.RoleUser}

	first, err := svc.ToggleLike(context.Background(), liker, 5)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, int64(1), first.LikeCount)

	second, err := svc.ToggleLike(context.Background(), liker, 5)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, int64(0), second.LikeCount)
	repo.AssertExpectations(t)
}

func TestToggleLike_MissingPanel(t *testing.T) {
	repo := new(MockPanelRepository)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPanelService(repo)

	_, err := svc.ToggleLike(context.Background(), Caller{ID: "u2"}, 99)
	assert.ErrorIs(t, err, ErrPanelNotFound)
}

func TestAddComment_OpenToAnyAuthenticatedUser(t *testing.T) {
	repo := new(MockPanelRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.FavoritePanel{ID: 5, UserID: "u1"}, nil)
	repo.On("AddComment", mock.Anything, mock.MatchedBy(func(c *models.PanelComment) bool {
		return c.PanelID == 5 && c.UserID == "u2" && c.Text == "great panel"
	})).Return(nil)

	svc := NewPanelService(repo)
	commenter := Caller{ID: "u2", Role: models.RoleUser}

	resp, err := svc.AddComment(context.Background(), commenter, 5, "great panel")
	require.NoError(t, err)
	assert.Equal(t, "u2", resp.UserID)
	assert.Equal(t, "great panel", resp.Text)
	repo.AssertExpectations(t)
}
