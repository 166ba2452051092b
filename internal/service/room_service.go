package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chatapi/internal/authz"
	"chatapi/internal/errors"
	"chatapi/internal/model"
	"chatapi/internal/pagination"
	"chatapi/internal/repository"
)

// CreateRoomInput carries the validated fields for room creation.
type CreateRoomInput struct {
	Name        string
	Description string
	IsPrivate   bool
}

// UpdateRoomInput carries the optional fields for a room update. Nil
// means "leave unchanged".
type UpdateRoomInput struct {
	Name        *string
	Description *string
	IsPrivate   *bool
}

// RoomService exposes room and membership operations.
type RoomService interface {
	List(ctx context.Context, filter repository.RoomFilter, params pagination.Params) (*pagination.Page, error)
	Create(ctx context.Context, actor *model.User, input CreateRoomInput) (*model.Room, error)
	Get(ctx context.Context, id uint) (*model.Room, error)
	Update(ctx context.Context, id uint, actor *model.User, input UpdateRoomInput) (*model.Room, error)
	Delete(ctx context.Context, id uint, actor *model.User) error
	Join(ctx context.Context, roomID uint, actor *model.User) (*model.Membership, error)
	Leave(ctx context.Context, roomID uint, actor *model.User) error
	Members(ctx context.Context, roomID uint) ([]model.Membership, error)
}

type roomService struct {
	roomRepo       repository.RoomRepository
	membershipRepo repository.MembershipRepository
}

// NewRoomService creates a new room service.
func NewRoomService(roomRepo repository.RoomRepository, membershipRepo repository.MembershipRepository) RoomService {
	return &roomService{
		roomRepo:       roomRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *roomService) List(ctx context.Context, filter repository.RoomFilter, params pagination.Params) (*pagination.Page, error) {
	rooms, total, err := s.roomRepo.List(ctx, filter, params)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return pagination.NewPage(rooms, params, total), nil
}

// Create persists the room together with the creator's admin membership.
// The repository runs both inserts in one transaction.
func (s *roomService) Create(ctx context.Context, actor *model.User, input CreateRoomInput) (*model.Room, error) {
	room := &model.Room{
		Name:        input.Name,
		Description: input.Description,
		IsPrivate:   input.IsPrivate,
		CreatedBy:   actor.ID,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	return s.roomRepo.FindByIDWithRelations(ctx, room.ID)
}

func (s *roomService) Get(ctx context.Context, id uint) (*model.Room, error) {
	room, err := s.roomRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) Update(ctx context.Context, id uint, actor *model.User, input UpdateRoomInput) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	membership := s.findMembership(ctx, id, actor.ID)
	if !authz.CanUpdateRoom(membership) {
		return nil, errors.Forbidden("Unauthorized. Only room admins can update room details.")
	}

	if input.Name != nil {
		room.Name = *input.Name
	}
	if input.Description != nil {
		room.Description = *input.Description
	}
	if input.IsPrivate != nil {
		room.IsPrivate = *input.IsPrivate
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	return s.roomRepo.FindByIDWithRelations(ctx, room.ID)
}

// Delete removes the room; memberships and messages go with it via the
// store's cascade constraints.
func (s *roomService) Delete(ctx context.Context, id uint, actor *model.User) error {
	if _, err := s.roomRepo.FindByID(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRoomNotFound
		}
		return err
	}

	membership := s.findMembership(ctx, id, actor.ID)
	if !authz.CanDeleteRoom(membership) {
		return errors.Forbidden("Unauthorized. Only room admins can delete rooms.")
	}

	return s.roomRepo.Delete(ctx, id)
}

func (s *roomService) Join(ctx context.Context, roomID uint, actor *model.User) (*model.Membership, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	if existing := s.findMembership(ctx, roomID, actor.ID); existing != nil {
		return nil, errors.ErrAlreadyMember
	}

	membership := &model.Membership{
		UserID:   actor.ID,
		RoomID:   roomID,
		IsAdmin:  false,
		JoinedAt: time.Now(),
	}

	// The composite unique index catches a concurrent duplicate join.
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrAlreadyMember
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}

	return membership, nil
}

func (s *roomService) Leave(ctx context.Context, roomID uint, actor *model.User) error {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRoomNotFound
		}
		return err
	}

	if existing := s.findMembership(ctx, roomID, actor.ID); existing == nil {
		return errors.ErrNotMember
	}

	return s.membershipRepo.Delete(ctx, roomID, actor.ID)
}

func (s *roomService) Members(ctx context.Context, roomID uint) ([]model.Membership, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	return s.membershipRepo.ListByRoom(ctx, roomID)
}

// findMembership loads the (room, user) membership, treating "not found"
// as nil for the authz predicates.
func (s *roomService) findMembership(ctx context.Context, roomID, userID uint) *model.Membership {
	membership, err := s.membershipRepo.Find(ctx, roomID, userID)
	if err != nil {
		return nil
	}
	return membership
}
