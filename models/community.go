package models

import "time"

// Community groups posts under a human-readable slug. The slug is assigned at
// creation time and never changes afterwards.
type Community struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null;index" json:"name"`
	Slug        string    `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	IsPrivate   bool      `gorm:"default:false" json:"is_private"`
	CreatedByID uint      `gorm:"index;not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID" json:"-"`
	Posts       []Post    `gorm:"foreignKey:CommunityID" json:"-"`
}

// CommunityMember is one row of the membership set. The composite unique index
// is the authoritative guard against duplicate joins.
type CommunityMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CommunityID uint      `gorm:"not null;index;uniqueIndex:uk_community_user" json:"community_id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:uk_community_user" json:"user_id"`
	CreatedAt   time.Time `json:"joined_at"`
}

// TableName keeps the historical table name for the membership relation.
func (CommunityMember) TableName() string {
	return "community_members"
}
