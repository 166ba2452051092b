package model

import (
	"encoding/json"
	"time"
)

// MaxMessageLength is the maximum number of characters in a message body.
const MaxMessageLength = 1000

// Message represents a chat message posted in a room. System messages
// are room-level announcements authored by a room admin.
type Message struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Content         string    `json:"content" gorm:"size:1000;not null"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	RoomID          uint      `json:"room_id" gorm:"not null;index"`
	IsSystemMessage bool      `json:"is_system_message" gorm:"not null;default:false;index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// FormattedContent returns the display form of the message content.
// System messages get a "System: " prefix; this is derived at read time
// and never stored.
func (m *Message) FormattedContent() string {
	if m.IsSystemMessage {
		return "System: " + m.Content
	}
	return m.Content
}

// MarshalJSON adds the derived formatted_content field to the wire form.
func (m Message) MarshalJSON() ([]byte, error) {
	type alias Message
	return json.Marshal(struct {
		alias
		FormattedContent string `json:"formatted_content"`
	}{
		alias:            alias(m),
		FormattedContent: m.FormattedContent(),
	})
}
