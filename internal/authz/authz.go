// Package authz holds the pure authorization predicates for the chat
// domain. Predicates operate on already-loaded entities and have no side
// effects; callers are responsible for loading the membership row (a nil
// membership means "not a member"). Keeping these separate from the
// services makes the access rules testable without a database.
package authz

import "chatapi/internal/model"

// IsGlobalAdmin reports whether the user holds the global admin role.
func IsGlobalAdmin(u *model.User) bool {
	return u != nil && u.IsAdmin()
}

// IsModerator reports whether the user has moderator capability.
// The check is a capability superset: true for both moderators and admins.
func IsModerator(u *model.User) bool {
	return u != nil && u.IsModerator()
}

// IsRoomMember reports whether a membership row exists.
func IsRoomMember(m *model.Membership) bool {
	return m != nil
}

// IsRoomAdmin reports whether the membership carries the room admin flag.
func IsRoomAdmin(m *model.Membership) bool {
	return m != nil && m.IsAdmin
}

// CanUpdateRoom reports whether the actor holding membership m may change
// room details. Room authority is room-scoped: a global admin without an
// admin membership cannot update the room.
func CanUpdateRoom(m *model.Membership) bool {
	return IsRoomAdmin(m)
}

// CanDeleteRoom mirrors CanUpdateRoom.
func CanDeleteRoom(m *model.Membership) bool {
	return IsRoomAdmin(m)
}

// CanSendSystemMessage reports whether the actor holding membership m may
// post system messages to the room.
func CanSendSystemMessage(m *model.Membership) bool {
	return IsRoomAdmin(m)
}

// CanEditMessage reports whether actor may edit msg: the author always
// can, and so can a room admin of the message's room (membership is the
// actor's membership in that room).
func CanEditMessage(msg *model.Message, actor *model.User, membership *model.Membership) bool {
	if msg == nil || actor == nil {
		return false
	}
	return msg.UserID == actor.ID || IsRoomAdmin(membership)
}

// CanDeleteMessage mirrors CanEditMessage.
func CanDeleteMessage(msg *model.Message, actor *model.User, membership *model.Membership) bool {
	return CanEditMessage(msg, actor, membership)
}

// CanUpdateUserProfile reports whether actor may update target's profile
// fields. Role changes are gated separately by CanChangeRole.
func CanUpdateUserProfile(target, actor *model.User) bool {
	if target == nil || actor == nil {
		return false
	}
	return target.ID == actor.ID || IsGlobalAdmin(actor)
}

// CanChangeRole reports whether actor may change any user's role.
func CanChangeRole(actor *model.User) bool {
	return IsGlobalAdmin(actor)
}

// CanDeleteUser reports whether actor may delete target. Admins may not
// delete themselves; that case is reported separately as a conflict by
// the service layer, so this predicate only covers the permission.
func CanDeleteUser(target, actor *model.User) bool {
	if target == nil || actor == nil {
		return false
	}
	return IsGlobalAdmin(actor) && actor.ID != target.ID
}
