package model

import "time"

// Activity is an audit-style record of something a user did. Rows are
// written asynchronously by the activity persist worker.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	Detail    string    `gorm:"size:255" json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
