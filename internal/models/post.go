package models

import (
	"time"
)

// Post is a short status update. The author's name and avatar are captured
// at creation time; they are a snapshot, not a live link to the user row.
type Post struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	AuthorName   string `gorm:"not null" json:"name"`
	AuthorAvatar string `json:"avatar"`
	Text         string `gorm:"type:text;not null" json:"text"`
	// Likes and Comments are loaded newest-first (id descending).
	Likes     []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Like marks that a user liked a post. A user may like a post at most once,
// enforced by the (user_id, post_id) unique index.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a reply on a post, with the commenter's name and avatar
// snapshotted at creation time like the post author's.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;index" json:"post_id"`
	UserID       uint      `gorm:"not null" json:"user_id"`
	AuthorName   string    `gorm:"not null" json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}
