package models

import "time"

type Post struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	AuthorID     uint64    `gorm:"not null;index" json:"author_id"`
	Title        string    `gorm:"type:varchar(100);not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CategoryID   uint64    `gorm:"not null;index" json:"category_id"`
	ThumbnailKey string    `gorm:"type:varchar(255)" json:"-"`
	ThumbnailURL string    `gorm:"type:varchar(512)" json:"thumbnail_url"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category  Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
	LikeUsers []User    `gorm:"many2many:post_likes" json:"-"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}
