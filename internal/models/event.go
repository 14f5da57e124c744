package models

import "time"

type EventColor string

const (
	EventColorPrimary   EventColor = "text-bg-primary"
	EventColorSecondary EventColor = "text-bg-secondary"
	EventColorSuccess   EventColor = "text-bg-success"
	EventColorDanger    EventColor = "text-bg-danger"
	EventColorWarning   EventColor = "text-bg-warning"
	EventColorInfo      EventColor = "text-bg-info"
)

// EventColorLabels maps every selectable color to its display label.
var EventColorLabels = map[EventColor]string{
	EventColorPrimary:   "파란색",
	EventColorSecondary: "회색",
	EventColorSuccess:   "초록색",
	EventColorDanger:    "빨간색",
	EventColorWarning:   "노란색",
	EventColorInfo:      "하늘색",
}

// Valid reports whether c is one of the six known colors.
func (c EventColor) Valid() bool {
	_, ok := EventColorLabels[c]
	return ok
}

type Event struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	AuthorID  uint64     `gorm:"not null;index" json:"author_id"`
	Title     string     `gorm:"type:varchar(100);not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Color     EventColor `gorm:"column:event_color;type:varchar(100);not null;default:'text-bg-primary'" json:"event_color"`
	StartTime time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time  `gorm:"not null" json:"end_time"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
