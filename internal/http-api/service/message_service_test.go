package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mangaist/internal/http-api/models"
)

func TestMessageSend_RejectsSelf(t *testing.T) {
	svc := NewMessageService(new(MockMessageRepository), new(MockUserRepository))

	_, err := svc.Send(context.Background(), Caller{ID: "u1"}, "u1", "hi me")
	assert.ErrorIs(t, err, ErrSelfMessage)
}

func TestMessageSend_UnknownRecipient(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewMessageService(new(MockMessageRepository), userRepo)

	_, err := svc.Send(context.Background(), Caller{ID: "u1"}, "ghost", "hello?")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMessageSend_CreatesUnread(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, "u2").Return(&models.User{ID: "u2"}, nil)
	msgRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.SenderID == "u1" && m.RecipientID == "u2" && !m.Read
	})).Return(nil)

	svc := NewMessageService(msgRepo, userRepo)

	resp, err := svc.Send(context.Background(), Caller{ID: "u1"}, "u2", "yo")
	require.NoError(t, err)
	assert.False(t, resp.Read)
	msgRepo.AssertExpectations(t)
}

func TestConversations_GroupsPerCounterpartWithUnreadCount(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	now := time.Now()
	// Newest first, as the repository returns them
	messages := []models.Message{
		{ID: 5, SenderID: "u2", RecipientID: "u1", Content: "latest from u2", Read: false, CreatedAt: now},
		{ID: 4, SenderID: "u3", RecipientID: "u1", Content: "latest from u3", Read: true, CreatedAt: now.Add(-time.Minute)},
		{ID: 3, SenderID: "u2", RecipientID: "u1", Content: "older from u2", Read: false, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: 2, SenderID: "u1", RecipientID: "u2", Content: "own message", Read: true, CreatedAt: now.Add(-3 * time.Minute)},
		{ID: 1, SenderID: "u1", RecipientID: "u3", Content: "own message", Read: false, CreatedAt: now.Add(-4 * time.Minute)},
	}
	msgRepo.On("ListInvolving", mock.Anything, "u1").Return(messages, nil)
	userRepo.On("FindByID", mock.Anything, "u2").Return(&models.User{ID: "u2", Nickname: "two"}, nil)
	userRepo.On("FindByID", mock.Anything, "u3").Return(&models.User{ID: "u3", Nickname: "three"}, nil)

	svc := NewMessageService(msgRepo, userRepo)

	convs, err := svc.Conversations(context.Background(), Caller{ID: "u1"})
	require.NoError(t, err)
	require.Len(t, convs, 2)

	// Ordered by most recent exchange
	assert.Equal(t, "u2", convs[0].UserID)
	assert.Equal(t, int64(5), convs[0].LastMessage.ID)
	assert.Equal(t, 2, convs[0].UnreadCount)
	assert.Equal(t, "two", convs[0].User.Nickname)

	assert.Equal(t, "u3", convs[1].UserID)
	assert.Equal(t, int64(4), convs[1].LastMessage.ID)
	// Outgoing unread messages never count against the caller
	assert.Equal(t, 0, convs[1].UnreadCount)
}

func TestConversations_DeletedCounterpartKeepsThread(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	msgRepo.On("ListInvolving", mock.Anything, "u1").Return([]models.Message{
		{ID: 1, SenderID: "gone", RecipientID: "u1", Content: "bye", Read: false},
	}, nil)
	userRepo.On("FindByID", mock.Anything, "gone").Return(nil, gorm.ErrRecordNotFound)

	svc := NewMessageService(msgRepo, userRepo)

	convs, err := svc.Conversations(context.Background(), Caller{ID: "u1"})
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Nil(t, convs[0].User)
}

func TestGetWithUser_MarksIncomingRead(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	userRepo.On("FindByID", mock.Anything, "u2").Return(&models.User{ID: "u2"}, nil)
	msgRepo.On("ListBetween", mock.Anything, "u1", "u2").Return([]models.Message{
		{ID: 1, SenderID: "u2", RecipientID: "u1", Content: "hi", Read: false},
		{ID: 2, SenderID: "u1", RecipientID: "u2", Content: "hey", Read: false},
	}, nil)
	msgRepo.On("MarkRead", mock.Anything, "u1", "u2").Return(nil)

	svc := NewMessageService(msgRepo, userRepo)

	thread, err := svc.GetWithUser(context.Background(), Caller{ID: "u1"}, "u2")
	require.NoError(t, err)
	require.Len(t, thread, 2)

	// Incoming flips to read in the response; outgoing reflects the
	// recipient's state untouched
	assert.True(t, thread[0].Read)
	assert.False(t, thread[1].Read)
	msgRepo.AssertCalled(t, "MarkRead", mock.Anything, "u1", "u2")
}
