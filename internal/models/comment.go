package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	AuthorID  uint64    `gorm:"not null;index" json:"author_id"`
	PostID    uint64    `gorm:"not null;index" json:"post_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author    User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Post      *Post   `gorm:"foreignKey:PostID" json:"-"`
	LikeUsers []User  `gorm:"many2many:comment_likes" json:"-"`
	Replies   []Reply `gorm:"foreignKey:CommentID" json:"replies,omitempty"`
}

type Reply struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	AuthorID  uint64    `gorm:"not null;index" json:"author_id"`
	CommentID uint64    `gorm:"not null;index" json:"comment_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author    User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comment   *Comment `gorm:"foreignKey:CommentID" json:"-"`
	LikeUsers []User   `gorm:"many2many:reply_likes" json:"-"`
}
