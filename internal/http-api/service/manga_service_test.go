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

func TestMangaCreate_DefaultRequiresAdmin(t *testing.T) {
	repo := new(MockMangaRepository)
	svc := NewMangaService(repo, nil)

	isDefault := true
	d := dto.CreateMangaDTO{Title: "One Piece", Author: "Eiichiro Oda", IsDefault: &isDefault}

	_, err := svc.Create(context.Background(), Caller{ID: "u1", Role: models.RoleUser}, d)
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMangaCreate_PersonalMangaOwnedByCaller(t *testing.T) {
	repo := new(MockMangaRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Manga) bool {
		return !m.IsDefault && m.CreatedBy != nil && *m.CreatedBy == "u1"
	})).Return(nil)

	svc := NewMangaService(repo, nil)

	d := dto.CreateMangaDTO{Title: "Berserk", Author: "Kentaro Miura"}
	resp, err := svc.Create(context.Background(), Caller{ID: "u1", Role: models.RoleUser}, d)
	require.NoError(t, err)
	assert.Equal(t, "Berserk", resp.Title)
	assert.Equal(t, models.MangaStatusOngoing, resp.Status)
	repo.AssertExpectations(t)
}

func TestMangaUpdate_DefaultMangaAdminOnly(t *testing.T) {
	repo := new(MockMangaRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(&models.Manga{ID: 7, IsDefault: true}, nil)

	svc := NewMangaService(repo, nil)

	title := "Renamed"
	_, err := svc.Update(context.Background(), Caller{ID: "u1", Role: models.RoleUser}, 7, dto.UpdateMangaDTO{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMangaUpdate_OwnerPatchesOwnManga(t *testing.T) {
	repo := new(MockMangaRepository)
	owner := "u1"
	repo.On("GetByID", mock.Anything, int64(42)).Return(&models.Manga{ID: 42, Title: "Old", Author: "A", CreatedBy: &owner}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(m *models.Manga) bool {
		return m.Title == "New" && m.Author == "A"
	})).Return(nil)

	svc := NewMangaService(repo, nil)

	title := "New"
	resp, err := svc.Update(context.Background(), Caller{ID: "u1", Role: models.RoleUser}, 42, dto.UpdateMangaDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Title)
}

func TestMangaDelete_RefusesDefault(t *testing.T) {
	repo := new(MockMangaRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(&models.Manga{ID: 7, IsDefault: true}, nil)

	svc := NewMangaService(repo, nil)

	_, err := svc.Delete(context.Background(), Caller{ID: "a1", Role: models.RoleAdmin}, 7)
	assert.ErrorIs(t, err, ErrDefaultManga)
	repo.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
}

func TestMangaDelete_ReportsAffectedUsers(t *testing.T) {
	repo := new(MockMangaRepository)
	owner := "u1"
	repo.On("GetByID", mock.Anything, int64(42)).Return(&models.Manga{ID: 42, CreatedBy: &owner}, nil)
	repo.On("DeleteCascade", mock.Anything, int64(42)).Return(int64(3), nil)

	svc := NewMangaService(repo, nil)

	affected, err := svc.Delete(context.Background(), Caller{ID: "u1", Role: models.RoleUser}, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
}

func TestMangaGet_NotFound(t *testing.T) {
	repo := new(MockMangaRepository)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewMangaService(repo, nil)

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMangaNotFound)
}

func TestMangaAddCharacter(t *testing.T) {
	repo := new(MockMangaRepository)
	owner := "u1"
	m := &models.Manga{ID: 42, CreatedBy: &owner}
	repo.On("GetByID", mock.Anything, int64(42)).Return(m, nil)
	repo.On("AddCharacter", mock.Anything, mock.MatchedBy(func(ch *models.Character) bool {
		return ch.MangaID == 42 && ch.Name == "Guts"
	})).Return(nil)

	svc := NewMangaService(repo, nil)

	_, err := svc.AddCharacter(context.Background(), Caller{ID: "u1", Role: models.RoleUser}, 42, "Guts", nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
