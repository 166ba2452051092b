package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"chatapi/internal/authz"
	"chatapi/internal/errors"
	"chatapi/internal/model"
	"chatapi/internal/pagination"
	"chatapi/internal/repository"
)

// CreateMessageInput carries the validated fields for posting a message.
type CreateMessageInput struct {
	Content         string
	RoomID          uint
	IsSystemMessage bool
}

// MessageService exposes message lifecycle operations.
type MessageService interface {
	List(ctx context.Context, filter repository.MessageFilter, params pagination.Params) (*pagination.Page, error)
	Create(ctx context.Context, actor *model.User, input CreateMessageInput) (*model.Message, error)
	Get(ctx context.Context, id uint) (*model.Message, error)
	Update(ctx context.Context, id uint, actor *model.User, content string) (*model.Message, error)
	Delete(ctx context.Context, id uint, actor *model.User) error
	RoomMessages(ctx context.Context, roomID uint, actor *model.User, filter repository.MessageFilter, params pagination.Params) (*pagination.Page, error)
	SendSystemMessage(ctx context.Context, roomID uint, actor *model.User, content string) (*model.Message, error)
}

type messageService struct {
	messageRepo    repository.MessageRepository
	roomRepo       repository.RoomRepository
	membershipRepo repository.MembershipRepository
}

// NewMessageService creates a new message service.
func NewMessageService(
	messageRepo repository.MessageRepository,
	roomRepo repository.RoomRepository,
	membershipRepo repository.MembershipRepository,
) MessageService {
	return &messageService{
		messageRepo:    messageRepo,
		roomRepo:       roomRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *messageService) List(ctx context.Context, filter repository.MessageFilter, params pagination.Params) (*pagination.Page, error) {
	messages, total, err := s.messageRepo.List(ctx, filter, params)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return pagination.NewPage(messages, params, total), nil
}

// Create posts a message as actor. Membership is required; a system
// message additionally requires room admin, whatever the client sent.
func (s *messageService) Create(ctx context.Context, actor *model.User, input CreateMessageInput) (*model.Message, error) {
	if _, err := s.roomRepo.FindByID(ctx, input.RoomID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	membership := s.findMembership(ctx, input.RoomID, actor.ID)
	if !authz.IsRoomMember(membership) {
		return nil, errors.Forbidden("You are not a member of this room")
	}
	if input.IsSystemMessage && !authz.CanSendSystemMessage(membership) {
		return nil, errors.Forbidden("Unauthorized. Only room admins can send system messages.")
	}

	message := &model.Message{
		Content:         input.Content,
		UserID:          actor.ID,
		RoomID:          input.RoomID,
		IsSystemMessage: input.IsSystemMessage,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	return s.messageRepo.FindByIDWithRelations(ctx, message.ID)
}

func (s *messageService) Get(ctx context.Context, id uint) (*model.Message, error) {
	message, err := s.messageRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// Update edits the message content. Content is the only mutable field.
func (s *messageService) Update(ctx context.Context, id uint, actor *model.User, content string) (*model.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMessageNotFound
		}
		return nil, err
	}

	membership := s.findMembership(ctx, message.RoomID, actor.ID)
	if !authz.CanEditMessage(message, actor, membership) {
		return nil, errors.Forbidden("Unauthorized. Only message author or room admin can edit messages.")
	}

	message.Content = content
	if err := s.messageRepo.Update(ctx, message); err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}

	return s.messageRepo.FindByIDWithRelations(ctx, message.ID)
}

func (s *messageService) Delete(ctx context.Context, id uint, actor *model.User) error {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrMessageNotFound
		}
		return err
	}

	membership := s.findMembership(ctx, message.RoomID, actor.ID)
	if !authz.CanDeleteMessage(message, actor, membership) {
		return errors.Forbidden("Unauthorized. Only message author or room admin can delete messages.")
	}

	return s.messageRepo.Delete(ctx, id)
}

// RoomMessages lists a room's messages for a member, newest first.
func (s *messageService) RoomMessages(ctx context.Context, roomID uint, actor *model.User, filter repository.MessageFilter, params pagination.Params) (*pagination.Page, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	membership := s.findMembership(ctx, roomID, actor.ID)
	if !authz.IsRoomMember(membership) {
		return nil, errors.Forbidden("You are not a member of this room")
	}

	filter.RoomID = roomID
	return s.List(ctx, filter, params)
}

// SendSystemMessage posts a room announcement. The system flag is forced
// true regardless of caller input.
func (s *messageService) SendSystemMessage(ctx context.Context, roomID uint, actor *model.User, content string) (*model.Message, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	membership := s.findMembership(ctx, roomID, actor.ID)
	if !authz.CanSendSystemMessage(membership) {
		return nil, errors.Forbidden("Unauthorized. Only room admins can send system messages.")
	}

	message := &model.Message{
		Content:         content,
		UserID:          actor.ID,
		RoomID:          roomID,
		IsSystemMessage: true,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create system message: %w", err)
	}

	return s.messageRepo.FindByIDWithRelations(ctx, message.ID)
}

func (s *messageService) findMembership(ctx context.Context, roomID, userID uint) *model.Membership {
	membership, err := s.membershipRepo.Find(ctx, roomID, userID)
	if err != nil {
		return nil
	}
	return membership
}
