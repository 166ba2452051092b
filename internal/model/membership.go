package model

import "time"

// Membership is the join row linking a user to a room. The composite
// unique index guarantees at most one membership per (user, room) pair
// at the store level, so concurrent joins cannot produce duplicates.
type Membership struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	UserID   uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_room"`
	RoomID   uint      `json:"room_id" gorm:"not null;uniqueIndex:idx_user_room"`
	IsAdmin  bool      `json:"is_admin" gorm:"not null;default:false"`
	JoinedAt time.Time `json:"joined_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
