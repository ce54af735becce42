package model

import "time"

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupMember links a user to a group. The composite unique index keeps a
// user from being added to the same group twice.
type GroupMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
