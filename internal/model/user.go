package model

import "time"

// Role is the global role of a user. It is a closed set; room-level
// authority is carried by Membership.IsAdmin instead.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered chat user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	CreatedAt    time.Time `json:"created_at"`
	// UpdatedAt doubles as the last-activity timestamp: the auth
	// middleware bumps it on every authenticated request, and the
	// online-users query compares against it.
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Memberships  []Membership `json:"memberships,omitempty" gorm:"foreignKey:UserID"`
	CreatedRooms []Room       `json:"created_rooms,omitempty" gorm:"foreignKey:CreatedBy"`
	Messages     []Message    `json:"messages,omitempty" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user is a global admin.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsModerator reports whether the user has moderator capability.
// Admins count as moderators.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
