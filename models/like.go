package models

import "time"

// Like pairs one user with one post. The composite unique index enforces at
// most one like per (user, post) pair at the storage layer.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:uk_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:uk_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
