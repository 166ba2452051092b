package model

import "time"

// Room represents a chat room. CreatedBy is set once at creation and
// never changes afterwards.
type Room struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	IsPrivate   bool      `json:"is_private" gorm:"not null;default:false;index"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations. Deleting a room cascades to its memberships and
	// messages; deleting the creator cascades to the room.
	Creator     *User        `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:RoomID"`
	Messages    []Message    `json:"messages,omitempty" gorm:"foreignKey:RoomID"`
}
