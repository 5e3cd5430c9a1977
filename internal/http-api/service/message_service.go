package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/models"
	"mangaist/internal/http-api/repository"
)

var ErrSelfMessage = errors.New("cannot message yourself")

type MessageService interface {
	Send(ctx context.Context, caller Caller, recipientID, content string) (*dto.MessageResponse, error)
	// Conversations derives the conversation list from the raw messages:
	// one entry per counterpart, carrying the most recent message and the
	// number of their messages still unread.
	Conversations(ctx context.Context, caller Caller) ([]dto.ConversationResponse, error)
	// GetWithUser returns the full thread with one user, oldest first, and
	// marks the incoming side as read.
	GetWithUser(ctx context.Context, caller Caller, otherID string) ([]dto.MessageResponse, error)
}

type messageService struct {
	repo     repository.MessageRepository
	userRepo repository.UserRepository
}

func NewMessageService(repo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{repo: repo, userRepo: userRepo}
}

func (s *messageService) Send(ctx context.Context, caller Caller, recipientID, content string) (*dto.MessageResponse, error) {
	if recipientID == caller.ID {
		return nil, ErrSelfMessage
	}

	if _, err := s.userRepo.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	msg := &models.Message{
		SenderID:    caller.ID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	resp := dto.FromModelToMessageResponse(*msg)
	return &resp, nil
}

func (s *messageService) Conversations(ctx context.Context, caller Caller) ([]dto.ConversationResponse, error) {
	messages, err := s.repo.ListInvolving(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	conversations := groupConversations(caller.ID, messages)

	// Attach the counterpart's public projection where the account still exists
	for i := range conversations {
		user, err := s.userRepo.FindByID(ctx, conversations[i].UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		pub := dto.FromModelToPublicUser(*user)
		conversations[i].User = &pub
	}

	return conversations, nil
}

// groupConversations folds a newest-first message list into one entry per
// counterpart. The first message seen per counterpart is the latest one.
func groupConversations(userID string, messages []models.Message) []dto.ConversationResponse {
	order := make([]string, 0, 8)
	byUser := make(map[string]*dto.ConversationResponse)

	for _, m := range messages {
		counterpart := m.SenderID
		if counterpart == userID {
			counterpart = m.RecipientID
		}

		conv, ok := byUser[counterpart]
		if !ok {
			conv = &dto.ConversationResponse{
				UserID:      counterpart,
				LastMessage: dto.FromModelToMessageResponse(m),
			}
			byUser[counterpart] = conv
			order = append(order, counterpart)
		}
		if m.RecipientID == userID && !m.Read {
			conv.UnreadCount++
		}
	}

	result := make([]dto.ConversationResponse, 0, len(order))
	for _, id := range order {
		result = append(result, *byUser[id])
	}
	return result
}

func (s *messageService) GetWithUser(ctx context.Context, caller Caller, otherID string) ([]dto.MessageResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, otherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	messages, err := s.repo.ListBetween(ctx, caller.ID, otherID)
	if err != nil {
		return nil, err
	}

	// Opening the thread counts as reading it
	if err := s.repo.MarkRead(ctx, caller.ID, otherID); err != nil {
		return nil, err
	}

	result := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp := dto.FromModelToMessageResponse(m)
		if m.RecipientID == caller.ID {
			resp.Read = true
		}
		result = append(result, resp)
	}
	return result, nil
}
