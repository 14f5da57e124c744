package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidMonth = errors.New("month must be formatted as YYYY-M")

var weekdayNamesShort = [7]string{"월", "화", "수", "목", "금", "토", "일"}

// ParseMonth returns the first day of the month named by raw ("2025-3").
// An empty value selects the month of now.
func ParseMonth(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FirstOfMonth(now), nil
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return time.Time{}, ErrInvalidMonth
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 || year > 9999 {
		return time.Time{}, ErrInvalidMonth
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, ErrInvalidMonth
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()), nil
}

func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PrevMonth renders the query parameter selecting the month before d.
func PrevMonth(d time.Time) string {
	prev := FirstOfMonth(d).AddDate(0, 0, -1)
	return monthParam(prev)
}

// NextMonth renders the query parameter selecting the month after d.
func NextMonth(d time.Time) string {
	next := FirstOfMonth(d).AddDate(0, 1, 0)
	return monthParam(next)
}

func monthParam(t time.Time) string {
	return fmt.Sprintf("month=%d-%d", t.Year(), int(t.Month()))
}

// DaysInMonth returns the number of days of the month containing d.
func DaysInMonth(d time.Time) int {
	return FirstOfMonth(d).AddDate(0, 1, -1).Day()
}

// MonthWeeks lays out the month containing d as full weeks starting on
// firstWeekday. Days belonging to neighbouring months are 0.
func MonthWeeks(d time.Time, firstWeekday time.Weekday) [][]int {
	first := FirstOfMonth(d)
	lead := (int(first.Weekday()) - int(firstWeekday) + 7) % 7
	days := DaysInMonth(d)

	cells := make([]int, lead, lead+days+6)
	for day := 1; day <= days; day++ {
		cells = append(cells, day)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	weeks := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// WeekdayNameShort returns the one-letter Korean weekday name of t.
func WeekdayNameShort(t time.Time) string {
	// time.Weekday starts on Sunday, the names start on Monday.
	return weekdayNamesShort[(int(t.Weekday())+6)%7]
}

// WeekdayNameShortFromString accepts a YYYY-MM-DD date and returns "" when
// it cannot be parsed.
func WeekdayNameShortFromString(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return ""
	}
	return WeekdayNameShort(t)
}
