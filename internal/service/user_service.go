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

// onlineWindow is how recent a user's last activity must be to count as
// online. A passive timestamp comparison, not presence tracking.
const onlineWindow = 5 * time.Minute

// UpdateUserInput carries the optional profile fields. Nil means "leave
// unchanged".
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// UserStatistics is the on-demand aggregate for a user.
type UserStatistics struct {
	TotalRooms    int64          `json:"total_rooms"`
	TotalMessages int64          `json:"total_messages"`
	CreatedRooms  int64          `json:"created_rooms"`
	AdminRooms    int64          `json:"admin_rooms"`
	LastMessage   *model.Message `json:"last_message"`
	JoinedAt      time.Time      `json:"joined_at"`
}

// UserService exposes user directory operations.
type UserService interface {
	List(ctx context.Context, filter repository.UserFilter, onlineOnly bool, params pagination.Params) (*pagination.Page, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, targetID uint, actor *model.User, input UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, targetID uint, actor *model.User) error
	Rooms(ctx context.Context, userID uint, params pagination.Params) (*pagination.Page, error)
	Messages(ctx context.Context, userID uint, params pagination.Params) (*pagination.Page, error)
	Statistics(ctx context.Context, userID uint) (*UserStatistics, error)
	OnlineUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	userRepo       repository.UserRepository
	roomRepo       repository.RoomRepository
	membershipRepo repository.MembershipRepository
	messageRepo    repository.MessageRepository
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	membershipRepo repository.MembershipRepository,
	messageRepo repository.MessageRepository,
) UserService {
	return &userService{
		userRepo:       userRepo,
		roomRepo:       roomRepo,
		membershipRepo: membershipRepo,
		messageRepo:    messageRepo,
	}
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter, onlineOnly bool, params pagination.Params) (*pagination.Page, error) {
	if onlineOnly {
		since := time.Now().Add(-onlineWindow)
		filter.OnlineSince = &since
	}

	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return pagination.NewPage(users, params, total), nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update changes profile fields. Self or global admin only; role changes
// are global admin only regardless of target.
func (s *userService) Update(ctx context.Context, targetID uint, actor *model.User, input UpdateUserInput) (*model.User, error) {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if !authz.CanUpdateUserProfile(target, actor) {
		return nil, errors.Forbidden("Unauthorized. You can only update your own profile.")
	}
	if input.Role != nil && !authz.CanChangeRole(actor) {
		return nil, errors.Forbidden("Unauthorized. Only admins can change user roles.")
	}

	if input.Email != nil && *input.Email != target.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *input.Email)
		if err == nil && existing != nil && existing.ID != target.ID {
			return nil, errors.Validation("email", "The email has already been taken.")
		}
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email uniqueness: %w", err)
		}
		target.Email = *input.Email
	}
	if input.Name != nil {
		target.Name = *input.Name
	}
	if input.Role != nil {
		role := model.Role(*input.Role)
		if !role.Valid() {
			return nil, errors.Validation("role", "The selected role is invalid.")
		}
		target.Role = role
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return target, nil
}

// Delete removes a user. Global admin only, and never oneself. The
// user's memberships, messages and created rooms cascade at the store.
func (s *userService) Delete(ctx context.Context, targetID uint, actor *model.User) error {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return err
	}

	if !authz.IsGlobalAdmin(actor) {
		return errors.Forbidden("Unauthorized. Only admins can delete users.")
	}
	if target.ID == actor.ID {
		return errors.ErrSelfDelete
	}

	return s.userRepo.Delete(ctx, targetID)
}

func (s *userService) Rooms(ctx context.Context, userID uint, params pagination.Params) (*pagination.Page, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	rooms, total, err := s.roomRepo.ListByMember(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("list user rooms: %w", err)
	}
	return pagination.NewPage(rooms, params, total), nil
}

func (s *userService) Messages(ctx context.Context, userID uint, params pagination.Params) (*pagination.Page, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	messages, total, err := s.messageRepo.List(ctx, repository.MessageFilter{UserID: userID}, params)
	if err != nil {
		return nil, fmt.Errorf("list user messages: %w", err)
	}
	return pagination.NewPage(messages, params, total), nil
}

// Statistics computes the per-user aggregate on demand; nothing is
// cached or incrementally maintained.
func (s *userService) Statistics(ctx context.Context, userID uint) (*UserStatistics, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	totalRooms, err := s.membershipRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}
	totalMessages, err := s.messageRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	createdRooms, err := s.roomRepo.CountCreatedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count created rooms: %w", err)
	}
	adminRooms, err := s.membershipRepo.CountAdminByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count admin rooms: %w", err)
	}

	lastMessage, err := s.messageRepo.LastByUser(ctx, userID)
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("last message: %w", err)
	}

	return &UserStatistics{
		TotalRooms:    totalRooms,
		TotalMessages: totalMessages,
		CreatedRooms:  createdRooms,
		AdminRooms:    adminRooms,
		LastMessage:   lastMessage,
		JoinedAt:      user.CreatedAt,
	}, nil
}

func (s *userService) OnlineUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListOnline(ctx, time.Now().Add(-onlineWindow))
}
