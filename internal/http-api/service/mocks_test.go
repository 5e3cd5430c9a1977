package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mangaist/internal/http-api/models"
)

// Hand-written repository mocks shared across the service tests.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByAuthID(ctx context.Context, authID string) (*models.User, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ListPublic(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMangaRepository struct {
	mock.Mock
}

func (m *MockMangaRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Manga), args.Get(1).(int64), args.Error(2)
}

func (m *MockMangaRepository) GetByID(ctx context.Context, id int64) (*models.Manga, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manga), args.Error(1)
}

func (m *MockMangaRepository) Create(ctx context.Context, manga *models.Manga) error {
	args := m.Called(ctx, manga)
	return args.Error(0)
}

func (m *MockMangaRepository) Update(ctx context.Context, manga *models.Manga) error {
	args := m.Called(ctx, manga)
	return args.Error(0)
}

func (m *MockMangaRepository) DeleteCascade(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMangaRepository) AddCharacter(ctx context.Context, ch *models.Character) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockMangaRepository) GetCharacter(ctx context.Context, mangaID, characterID int64) (*models.Character, error) {
	args := m.Called(ctx, mangaID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

func (m *MockMangaRepository) UpdateCharacter(ctx context.Context, ch *models.Character) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Add(ctx context.Context, entry *models.CatalogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCatalogRepository) AddWithManga(ctx context.Context, manga *models.Manga, entry *models.CatalogEntry) error {
	args := m.Called(ctx, manga, entry)
	return args.Error(0)
}

func (m *MockCatalogRepository) Get(ctx context.Context, userID string, mangaID int64) (*models.CatalogEntry, error) {
	args := m.Called(ctx, userID, mangaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogEntry), args.Error(1)
}

func (m *MockCatalogRepository) Exists(ctx context.Context, userID string, mangaID int64) (bool, error) {
	args := m.Called(ctx, userID, mangaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) List(ctx context.Context, userID string) ([]models.CatalogEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogEntry), args.Error(1)
}

func (m *MockCatalogRepository) UpdateProgress(ctx context.Context, entry *models.CatalogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCatalogRepository) Remove(ctx context.Context, userID string, mangaID int64) error {
	args := m.Called(ctx, userID, mangaID)
	return args.Error(0)
}

type MockPanelRepository struct {
	mock.Mock
}

func (m *MockPanelRepository) Create(ctx context.Context, panel *models.FavoritePanel) error {
	args := m.Called(ctx, panel)
	return args.Error(0)
}

func (m *MockPanelRepository) GetByID(ctx context.Context, id int64) (*models.FavoritePanel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoritePanel), args.Error(1)
}

func (m *MockPanelRepository) ListByUser(ctx context.Context, userID string) ([]models.FavoritePanel, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FavoritePanel), args.Error(1)
}

func (m *MockPanelRepository) Update(ctx context.Context, panel *models.FavoritePanel) error {
	args := m.Called(ctx, panel)
	return args.Error(0)
}

func (m *MockPanelRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPanelRepository) HasLike(ctx context.Context, panelID int64, userID string) (bool, error) {
	args := m.Called(ctx, panelID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPanelRepository) AddLike(ctx context.Context, panelID int64, userID string) error {
	args := m.Called(ctx, panelID, userID)
	return args.Error(0)
}

func (m *MockPanelRepository) RemoveLike(ctx context.Context, panelID int64, userID string) error {
	args := m.Called(ctx, panelID, userID)
	return args.Error(0)
}

func (m *MockPanelRepository) CountLikes(ctx context.Context, panelID int64) (int64, error) {
	args := m.Called(ctx, panelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPanelRepository) AddComment(ctx context.Context, comment *models.PanelComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListInvolving(ctx context.Context, userID string) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, recipientID, senderID string) error {
	args := m.Called(ctx, recipientID, senderID)
	return args.Error(0)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByID(ctx context.Context, id string) (*models.RefreshToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubVerifier returns a fixed identity or error without touching real
// tokens.
type stubVerifier struct {
	identity *Identity
	err      error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}
