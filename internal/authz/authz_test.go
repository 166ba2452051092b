package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatapi/internal/model"
)

func TestGlobalRolePredicates(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	moderator := &model.User{ID: 2, Role: model.RoleModerator}
	user := &model.User{ID: 3, Role: model.RoleUser}

	assert.True(t, IsGlobalAdmin(admin))
	assert.False(t, IsGlobalAdmin(moderator))
	assert.False(t, IsGlobalAdmin(user))
	assert.False(t, IsGlobalAdmin(nil))

	// Moderator capability includes admins.
	assert.True(t, IsModerator(admin))
	assert.True(t, IsModerator(moderator))
	assert.False(t, IsModerator(user))
	assert.False(t, IsModerator(nil))
}

func TestRoomPredicates(t *testing.T) {
	adminMembership := &model.Membership{UserID: 3, RoomID: 10, IsAdmin: true}
	plainMembership := &model.Membership{UserID: 3, RoomID: 10}

	assert.True(t, IsRoomMember(plainMembership))
	assert.False(t, IsRoomMember(nil))

	assert.True(t, IsRoomAdmin(adminMembership))
	assert.False(t, IsRoomAdmin(plainMembership))
	assert.False(t, IsRoomAdmin(nil))

	assert.True(t, CanUpdateRoom(adminMembership))
	assert.False(t, CanUpdateRoom(plainMembership))
	assert.True(t, CanDeleteRoom(adminMembership))
	assert.False(t, CanDeleteRoom(nil))
	assert.True(t, CanSendSystemMessage(adminMembership))
	assert.False(t, CanSendSystemMessage(plainMembership))
}

func TestRoomAuthorityIsRoomScoped(t *testing.T) {
	// A global admin without an admin membership has no room authority.
	assert.False(t, CanUpdateRoom(nil))
	assert.False(t, CanSendSystemMessage(&model.Membership{UserID: 1, RoomID: 10}))
}

func TestCanEditMessage(t *testing.T) {
	author := &model.User{ID: 3}
	other := &model.User{ID: 5}
	msg := &model.Message{ID: 42, UserID: 3, RoomID: 10}

	tests := []struct {
		name       string
		actor      *model.User
		membership *model.Membership
		want       bool
	}{
		{name: "author", actor: author, membership: &model.Membership{UserID: 3, RoomID: 10}, want: true},
		{name: "author even without membership row", actor: author, membership: nil, want: true},
		{name: "room admin", actor: other, membership: &model.Membership{UserID: 5, RoomID: 10, IsAdmin: true}, want: true},
		{name: "plain member", actor: other, membership: &model.Membership{UserID: 5, RoomID: 10}, want: false},
		{name: "non-member", actor: other, membership: nil, want: false},
		{name: "nil actor", actor: nil, membership: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditMessage(msg, tt.actor, tt.membership))
			assert.Equal(t, tt.want, CanDeleteMessage(msg, tt.actor, tt.membership))
		})
	}

	assert.False(t, CanEditMessage(nil, author, nil))
}

func TestUserPredicates(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	moderator := &model.User{ID: 2, Role: model.RoleModerator}
	user := &model.User{ID: 3, Role: model.RoleUser}
	other := &model.User{ID: 5, Role: model.RoleUser}

	assert.True(t, CanUpdateUserProfile(user, user))
	assert.True(t, CanUpdateUserProfile(user, admin))
	assert.False(t, CanUpdateUserProfile(user, other))
	assert.False(t, CanUpdateUserProfile(user, moderator))
	assert.False(t, CanUpdateUserProfile(nil, admin))

	assert.True(t, CanChangeRole(admin))
	assert.False(t, CanChangeRole(moderator))
	assert.False(t, CanChangeRole(user))
	assert.False(t, CanChangeRole(nil))

	assert.True(t, CanDeleteUser(user, admin))
	assert.False(t, CanDeleteUser(user, moderator))
	assert.False(t, CanDeleteUser(user, other))
	assert.False(t, CanDeleteUser(admin, admin))
}
