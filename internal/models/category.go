package models

type Category struct {
	ID   uint64  `gorm:"primarykey" json:"id"`
	Name string  `gorm:"type:varchar(120);uniqueIndex;not null" json:"category_name"`
	Slug *string `gorm:"type:varchar(120)" json:"category_slug"`
}

type Tag struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(120);uniqueIndex;not null" json:"tag_name"`
}
