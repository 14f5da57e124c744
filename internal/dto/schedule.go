package dto

import (
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
)

// EventDTO represents a calendar event in API responses
type EventDTO struct {
	ID         uint64            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Color      models.EventColor `json:"event_color"`
	ColorLabel string            `json:"event_color_label"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time"`
	Author     *UserDTO          `json:"author,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type CalendarDayDTO struct {
	Day     int        `json:"day"`
	Weekday string     `json:"weekday,omitempty"`
	Events  []EventDTO `json:"events"`
}

// CalendarDTO is one month grid, weeks start on Sunday
type CalendarDTO struct {
	Year      int                `json:"year"`
	Month     int                `json:"month"`
	Weeks     [][]CalendarDayDTO `json:"weeks"`
	PrevMonth string             `json:"prev_month"`
	NextMonth string             `json:"next_month"`
}

func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:         event.ID,
		Title:      event.Title,
		Content:    event.Content,
		Color:      event.Color,
		ColorLabel: models.EventColorLabels[event.Color],
		StartTime:  event.StartTime,
		EndTime:    event.EndTime,
		Author:     authorDTO(event.Author),
		CreatedAt:  event.CreatedAt,
		UpdatedAt:  event.UpdatedAt,
	}
}

// ToCalendarDTO converts a computed month to DTO
func ToCalendarDTO(month *services.CalendarMonth) CalendarDTO {
	dto := CalendarDTO{
		Year:      month.First.Year(),
		Month:     int(month.First.Month()),
		Weeks:     make([][]CalendarDayDTO, len(month.Weeks)),
		PrevMonth: month.PrevMonth,
		NextMonth: month.NextMonth,
	}
	for i, week := range month.Weeks {
		days := make([]CalendarDayDTO, len(week))
		for j, day := range week {
			events := make([]EventDTO, len(day.Events))
			for k, event := range day.Events {
				events[k] = ToEventDTO(event)
			}
			days[j] = CalendarDayDTO{Day: day.Day, Weekday: day.Weekday, Events: events}
		}
		dto.Weeks[i] = days
	}
	return dto
}
