package models

import "time"

// Memo is a board note. Status true means on-going, false finished.
type Memo struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	AuthorID  uint64     `gorm:"not null;index" json:"author_id"`
	Title     string     `gorm:"type:varchar(100);not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Status    bool       `gorm:"not null;index" json:"status"`
	DueDate   *time.Time `json:"due_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Author    User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	LikeUsers []User `gorm:"many2many:memo_likes" json:"-"`
}
