package models

import "time"

// Post is content created by a user, optionally inside a community.
// CommunityID is nullable: posts may exist outside any community.
type Post struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	AuthorID       uint       `gorm:"index;not null" json:"author_id"`
	CommunityID    *uint      `gorm:"index" json:"community_id"`
	Title          string     `gorm:"size:255" json:"title"`
	Content        string     `gorm:"type:text" json:"content"`
	IsAnnouncement bool       `gorm:"default:false" json:"is_announcement"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Author         User       `gorm:"foreignKey:AuthorID" json:"author"`
	Community      *Community `gorm:"foreignKey:CommunityID" json:"-"`
	Comments       []Comment  `gorm:"foreignKey:PostID" json:"-"`
	Likes          []Like     `gorm:"foreignKey:PostID" json:"-"`
}
