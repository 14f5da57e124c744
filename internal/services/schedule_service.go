package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/repository"
	"github.com/yukikurage/homebase/internal/utils"
	"gorm.io/gorm"
)

// ScheduleService handles calendar events.
type ScheduleService struct {
	events repository.EventRepository
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(events repository.EventRepository) *ScheduleService {
	return &ScheduleService{events: events}
}

// CalendarDay is one cell of the month grid. Day is 0 for padding cells.
type CalendarDay struct {
	Day     int
	Weekday string
	Events  []models.Event
}

type CalendarMonth struct {
	First     time.Time
	Weeks     [][]CalendarDay
	PrevMonth string
	NextMonth string
}

// Calendar lays out the month starting at first as Sunday-first weeks and
// places every event starting inside the month on its day.
func (s *ScheduleService) Calendar(first time.Time) (*CalendarMonth, error) {
	first = utils.FirstOfMonth(first)
	events, err := s.events.ListStartingBetween(first, first.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	byDay := make(map[int][]models.Event)
	for _, event := range events {
		day := event.StartTime.In(first.Location()).Day()
		byDay[day] = append(byDay[day], event)
	}

	grid := utils.MonthWeeks(first, time.Sunday)
	weeks := make([][]CalendarDay, 0, len(grid))
	for _, week := range grid {
		days := make([]CalendarDay, 0, len(week))
		for _, day := range week {
			cell := CalendarDay{Day: day}
			if day != 0 {
				date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
				cell.Weekday = utils.WeekdayNameShort(date)
				cell.Events = byDay[day]
			}
			days = append(days, cell)
		}
		weeks = append(weeks, days)
	}

	return &CalendarMonth{
		First:     first,
		Weeks:     weeks,
		PrevMonth: utils.PrevMonth(first),
		NextMonth: utils.NextMonth(first),
	}, nil
}

func (s *ScheduleService) Get(id uint64) (*models.Event, error) {
	event, err := s.events.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// EventInput carries the editable fields of an event. An empty Color keeps
// the current color, or the default for new events.
type EventInput struct {
	Title     string
	Content   string
	Color     models.EventColor
	StartTime time.Time
	EndTime   time.Time
}

func validateEvent(input *EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	verr := &ValidationError{}
	checkTitle(input.Title, verr)
	if strings.TrimSpace(input.Content) == "" {
		verr.Add("content", "필수 항목입니다.")
	}
	if input.Color != "" && !input.Color.Valid() {
		verr.Add("event_color", "올바르게 선택해 주세요. 선택하신 것이 선택가능항목이 아닙니다.")
	}
	if input.StartTime.IsZero() {
		verr.Add("start_time", "필수 항목입니다.")
	}
	if input.EndTime.IsZero() {
		verr.Add("end_time", "필수 항목입니다.")
	}
	if !input.StartTime.IsZero() && !input.EndTime.IsZero() && input.EndTime.Before(input.StartTime) {
		verr.Add("end_time", "종료 시간은 시작 시간보다 빠를 수 없습니다.")
	}
	return verr.Err()
}

func (s *ScheduleService) Create(authorID uint64, input EventInput) (*models.Event, error) {
	if err := validateEvent(&input); err != nil {
		return nil, err
	}

	event := &models.Event{
		AuthorID:  authorID,
		Title:     input.Title,
		Content:   input.Content,
		Color:     input.Color,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	if event.Color == "" {
		event.Color = models.EventColorPrimary
	}

	if err := s.events.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *ScheduleService) Update(actorID uint64, event *models.Event, input EventInput) error {
	if err := ensureOwner(actorID, event); err != nil {
		return err
	}
	if err := validateEvent(&input); err != nil {
		return err
	}

	event.Title = input.Title
	event.Content = input.Content
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	if input.Color != "" {
		event.Color = input.Color
	}

	if err := s.events.Update(event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (s *ScheduleService) Delete(actorID uint64, event *models.Event) error {
	if err := ensureOwner(actorID, event); err != nil {
		return err
	}
	if err := s.events.Delete(event.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
