package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"chatapi/internal/errors"
	"chatapi/internal/model"
	"chatapi/internal/pagination"
	"chatapi/internal/repository"
)

func TestMessageService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateMessageInput
		setupMock func(*MockMessageRepository, *MockRoomRepository, *MockMembershipRepository)
		wantErr   error
		forbidden bool
	}{
		{
			name:  "member posts a message",
			input: CreateMessageInput{Content: "hello", RoomID: 10},
			setupMock: func(mMsg *MockMessageRepository, mRoom *MockRoomRepository, mMember *MockMembershipRepository) {
				mRoom.On("FindByID", mock.Anything, uint(10)).Return(&model.Room{ID: 10}, nil)
				mMember.On("Find", mock.Anything, uint(10), uint(3)).Return(&model.Membership{UserID: 3, RoomID: 10}, nil)
				mMsg.On("Create", mock.Anything, mock.AnythingOfType("*model.Message")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.Message).ID = 42
					}).
					Return(nil)
				mMsg.On("FindByIDWithRelations", mock.Anything, uint(42)).Return(&model.Message{ID: 42, Content: "hello", UserID: 3, RoomID: 10}, nil)
			},
		},
		{
			name:  "non-member cannot post",
			input: CreateMessageInput{Content: "hello", RoomID: 10},
			setupMock: func(mMsg *MockMessageRepository, mRoom *MockRoomRepository, mMember *MockMembershipRepository) {
				mRoom.On("FindByID", mock.Anything, uint(10)).Return(&model.Room{ID: 10}, nil)
				mMember.On("Find", mock.Anything, uint(10), uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			forbidden: true,
		},
		{
			name:  "plain member cannot flag a message as system",
			input: CreateMessageInput{Content: "announcement", RoomID: 10, IsSystemMessage: true},
			setupMock: func(mMsg *MockMessageRepository, mRoom *MockRoomRepository, mMember *MockMembershipRepository) {
				mRoom.On("FindByID", mock.Anything, uint(10)).Return(&model.Room{ID: 10}, nil)
				mMember.On("Find", mock.Anything, uint(10), uint(3)).Return(&model.Membership{UserID: 3, RoomID: 10, IsAdmin: false}, nil)
			},
			forbidden: true,
		},
		{
			name:  "room admin can flag a message as system",
			input: CreateMessageInput{Content: "announcement", RoomID: 10, IsSystemMessage: true},
			setupMock: func(mMsg *MockMessageRepository, mRoom *MockRoomRepository, mMember *MockMembershipRepository) {
				mRoom.On("FindByID", mock.Anything, uint(10)).Return(&model.Room{ID: 10}, nil)
				mMember.On("Find", mock.Anything, uint(10), uint(3)).Return(&model.Membership{UserID: 3, RoomID: 10, IsAdmin: true}, nil)
				mMsg.On("Create", mock.Anything, mock.AnythingOfType("*model.Message")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.Message).ID = 43
					}).
					Return(nil)
				mMsg.On("FindByIDWithRelations", mock.Anything, uint(43)).Return(&model.Message{ID: 43, Content: "announcement", UserID: 3, RoomID: 10, IsSystemMessage: true}, nil)
			},
		},
		{
			name:  "room not found",
			input: CreateMessageInput{Content: "hello", RoomID: 10},
			setupMock: func(mMsg *MockMessageRepository, mRoom *MockRoomRepository, mMember *MockMembershipRepository) {
				mRoom.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: errors.ErrRoomNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMessageRepo := new(MockMessageRepository)
			mockRoomRepo := new(MockRoomRepository)
			mockMembershipRepo := new(MockMembershipRepository)
			tt.setupMock(mockMessageRepo, mockRoomRepo, mockMembershipRepo)

			actor := &model.User{ID: 3}
			service := NewMessageService(mockMessageRepo, mockRoomRepo, mockMembershipRepo)

			message, err := service.Create(context.Background(), actor, tt.input)

			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, message)
			case tt.forbidden:
				var fe *errors.ForbiddenError
				assert.ErrorAs(t, err, &fe)
				assert.Nil(t, message)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, message)
				assert.Equal(t, tt.input.Content, message.Content)
				assert.Equal(t, tt.input.IsSystemMessage, message.IsSystemMessage)
			}

			mockMessageRepo.AssertExpectations(t)
			mockRoomRepo.AssertExpectations(t)
			mockMembershipRepo.AssertExpectations(t)
		})
	}
}

func TestMessageService_Update(t *testing.T) {
	tests := []struct {
		name      string
		actorID   uint
		setupMock func(*MockMessageRepository, *MockMembershipRepository)
		forbidden bool
	}{
		{
			name:    "author can edit",
			actorID: 3,
			setupMock: func(mMsg *MockMessageRepository, mMember *MockMembershipRepository) {
				mMsg.On("FindByID", mock.Anything, uint(42)).Return(&model.Message{ID: 42, Content: "old", UserID: 3, RoomID: 10}, nil)
				mMember.On("Find", mock.Anything, uint(10), uint(3)).Return(&model.Membership{UserID: 3, RoomID: 10}, nil)
				mMsg.On("Update", mock.Anything, mock.AnythingOfType("*model.Message")).Return(nil)
				mMsg.On("FindByIDWithRelations", mock.Anything, uint(42)).Return(&model.Message{ID: 42, Content: "new", UserID: 3, RoomID: 10}, nil)
			},
		},
		{
			name:    "room admin can edit someone else's message",
			actorID: 5,
			setupMock: func(mMsg *MockMessageRepository, mMember *MockMembershipRepository) {
				mMsg.On("FindByID", mock.Anything, uint(42)).Return(&model.Message{ID: 42, Content: "old", UserID: 3, RoomID: 10}, nil)
				mMember.On("Find", mock.Anything, uint(10), uint(5)).Return(&model.Membership{UserID: 5, RoomID: 10, IsAdmin: true}, nil)
				mMsg.On("Update", mock.Anything, mock.AnythingOfType("*model.Message")).Return(nil)
				mMsg.On("FindByIDWithRelations", mock.Anything, uint(42)).Return(&model.Message{ID: 42, Content: "new", UserID: 3, RoomID: 10}, nil)
			},
		},
		{
			name:    "plain member cannot edit someone else's message",
			actorID: 5,
			setupMock: func(mMsg *MockMessageRepository, mMember *MockMembershipRepository) {
				mMsg.On("FindByID", mock.Anything, uint(42)).Return(&model.Message{ID: 42, Content: "old", UserID: 3, RoomID: 10}, nil)
				mMember.On("Find", mock.Anything, uint(10), uint(5)).Return(&model.Membership{UserID: 5, RoomID: 10, IsAdmin: false}, nil)
			},
			forbidden: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMessageRepo := new(MockMessageRepository)
			mockMembershipRepo := new(MockMembershipRepository)
			tt.setupMock(mockMessageRepo, mockMembershipRepo)

			actor := &model.User{ID: tt.actorID}
			service := NewMessageService(mockMessageRepo, new(MockRoomRepository), mockMembershipRepo)

			message, err := service.Update(context.Background(), 42, actor, "new")

			if tt.forbidden {
				var fe *errors.ForbiddenError
				assert.ErrorAs(t, err, &fe)
				assert.Nil(t, message)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new", message.Content)
			}

			mockMessageRepo.AssertExpectations(t)
			mockMembershipRepo.AssertExpectations(t)
		})
	}
}

func TestMessageService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		actorID   uint
		isAdmin   bool
		forbidden bool
	}{
		{name: "author can delete", actorID: 3},
		{name: "room admin can delete", actorID: 5, isAdmin: true},
		{name: "plain member cannot delete someone else's message", actorID: 5, forbidden: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMessageRepo := new(MockMessageRepository)
			mockMembershipRepo := new(MockMembershipRepository)

			mockMessageRepo.On("FindByID", mock.Anything, uint(42)).Return(&model.Message{ID: 42, UserID: 3, RoomID: 10}, nil)
			mockMembershipRepo.On("Find", mock.Anything, uint(10), tt.actorID).Return(&model.Membership{UserID: tt.actorID, RoomID: 10, IsAdmin: tt.isAdmin}, nil)
			if !tt.forbidden {
				mockMessageRepo.On("Delete", mock.Anything, uint(42)).Return(nil)
			}

			actor := &model.User{ID: tt.actorID}
			service := NewMessageService(mockMessageRepo, new(MockRoomRepository), mockMembershipRepo)

			err := service.Delete(context.Background(), 42, actor)

			if tt.forbidden {
				var fe *errors.ForbiddenError
				assert.ErrorAs(t, err, &fe)
			} else {
				assert.NoError(t, err)
			}

			mockMessageRepo.AssertExpectations(t)
			mockMembershipRepo.AssertExpectations(t)
		})
	}
}

func TestMessageService_RoomMessages(t *testing.T) {
	t.Run("member sees room messages scoped to the room", func(t *testing.T) {
		mockMessageRepo := new(MockMessageRepository)
		mockRoomRepo := new(MockRoomRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		mockRoomRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Room{ID: 10}, nil)
		mockMembershipRepo.On("Find", mock.Anything, uint(10), uint(3)).Return(&model.Membership{UserID: 3, RoomID: 10}, nil)
		mockMessageRepo.On("List", mock.Anything, repository.MessageFilter{RoomID: 10}, pagination.Params{Page: 1, PerPage: 50}).
			Return([]model.Message{{ID: 2, RoomID: 10}, {ID: 1, RoomID: 10}}, int64(2), nil)

		actor := &model.User{ID: 3}
		service := NewMessageService(mockMessageRepo, mockRoomRepo, mockMembershipRepo)

		// Even if the caller smuggles another room into the filter, the
		// path parameter wins.
		page, err := service.RoomMessages(context.Background(), 10, actor, repository.MessageFilter{RoomID: 99}, pagination.Params{Page: 1, PerPage: 50})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)

		mockMessageRepo.AssertExpectations(t)
		mockRoomRepo.AssertExpectations(t)
		mockMembershipRepo.AssertExpectations(t)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		mockRoomRepo := new(MockRoomRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		mockRoomRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Room{ID: 10}, nil)
		mockMembershipRepo.On("Find", mock.Anything, uint(10), uint(3)).Return(nil, gorm.ErrRecordNotFound)

		actor := &model.User{ID: 3}
		service := NewMessageService(new(MockMessageRepository), mockRoomRepo, mockMembershipRepo)

		page, err := service.RoomMessages(context.Background(), 10, actor, repository.MessageFilter{}, pagination.Params{Page: 1, PerPage: 50})

		var fe *errors.ForbiddenError
		assert.ErrorAs(t, err, &fe)
		assert.Nil(t, page)
	})
}

func TestMessageService_SendSystemMessage(t *testing.T) {
	tests := []struct {
		name      string
		isAdmin   bool
		forbidden bool
	}{
		{name: "room admin can send", isAdmin: true},
		{name: "plain member is forbidden", isAdmin: false, forbidden: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMessageRepo := new(MockMessageRepository)
			mockRoomRepo := new(MockRoomRepository)
			mockMembershipRepo := new(MockMembershipRepository)

			mockRoomRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Room{ID: 10}, nil)
			mockMembershipRepo.On("Find", mock.Anything, uint(10), uint(3)).Return(&model.Membership{UserID: 3, RoomID: 10, IsAdmin: tt.isAdmin}, nil)
			if tt.isAdmin {
				mockMessageRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Message")).
					Run(func(args mock.Arguments) {
						message := args.Get(1).(*model.Message)
						message.ID = 44

						// The system flag is forced regardless of input.
						assert.True(t, message.IsSystemMessage)
					}).
					Return(nil)
				mockMessageRepo.On("FindByIDWithRelations", mock.Anything, uint(44)).Return(&model.Message{ID: 44, Content: "maintenance at noon", UserID: 3, RoomID: 10, IsSystemMessage: true}, nil)
			}

			actor := &model.User{ID: 3}
			service := NewMessageService(mockMessageRepo, mockRoomRepo, mockMembershipRepo)

			message, err := service.SendSystemMessage(context.Background(), 10, actor, "maintenance at noon")

			if tt.forbidden {
				var fe *errors.ForbiddenError
				assert.ErrorAs(t, err, &fe)
				assert.Nil(t, message)
			} else {
				assert.NoError(t, err)
				assert.True(t, message.IsSystemMessage)
			}

			mockMessageRepo.AssertExpectations(t)
			mockRoomRepo.AssertExpectations(t)
			mockMembershipRepo.AssertExpectations(t)
		})
	}
}
