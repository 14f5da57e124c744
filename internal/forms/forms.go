package forms

import (
	"strings"
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
)

// Input layouts of the HTML date and datetime-local widgets.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

type SignupForm struct {
	Username  string `form:"username" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Nickname  string `form:"nick_name" binding:"required"`
	Password1 string `form:"password1" binding:"required"`
	Password2 string `form:"password2" binding:"required"`
}

func (f SignupForm) Input() services.SignupInput {
	return services.SignupInput{
		Username:  f.Username,
		Email:     f.Email,
		Nickname:  f.Nickname,
		Password1: f.Password1,
		Password2: f.Password2,
	}
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type NicknameForm struct {
	Nickname string `form:"nick_name" binding:"required,max=30"`
}

type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" binding:"required"`
	NewPassword1 string `form:"new_password1" binding:"required"`
	NewPassword2 string `form:"new_password2" binding:"required"`
}

func (f PasswordChangeForm) Input() services.ChangePasswordInput {
	return services.ChangePasswordInput{
		OldPassword:  f.OldPassword,
		NewPassword1: f.NewPassword1,
		NewPassword2: f.NewPassword2,
	}
}

// PostForm is bound from a multipart body. The thumbnail file is read
// separately by the handler.
type PostForm struct {
	Category uint64   `form:"category" binding:"required"`
	Title    string   `form:"title" binding:"required,max=100"`
	Content  string   `form:"content" binding:"required"`
	Tags     []uint64 `form:"tags"`
}

func (f PostForm) Input() services.PostInput {
	return services.PostInput{
		Title:      f.Title,
		Content:    f.Content,
		CategoryID: f.Category,
		TagIDs:     f.Tags,
	}
}

// ContentForm backs comments and replies.
type ContentForm struct {
	Content string `form:"content" binding:"required"`
}

type CategoryForm struct {
	Name string `form:"category_name" binding:"required,max=120"`
	Slug string `form:"category_slug" binding:"max=120"`
}

// MemoForm keeps status and due_date as raw strings, an unchecked box and
// an empty date are both legal.
type MemoForm struct {
	Title   string `form:"title" binding:"required,max=100"`
	Content string `form:"content" binding:"required"`
	Status  string `form:"status"`
	DueDate string `form:"due_date"`
}

func (f MemoForm) Input() (services.MemoInput, error) {
	input := services.MemoInput{Title: f.Title, Content: f.Content}
	verr := &services.ValidationError{}

	status, ok := ParseCheckbox(f.Status)
	if !ok {
		verr.Add("status", MsgInvalidChoice)
	}
	input.Status = status

	if raw := strings.TrimSpace(f.DueDate); raw != "" {
		due, err := time.ParseInLocation(DateLayout, raw, time.Local)
		if err != nil {
			verr.Add("due_date", MsgInvalidDate)
		} else {
			input.DueDate = &due
		}
	}

	return input, verr.Err()
}

// ParseCheckbox reads a checkbox value. An absent box yields nil.
func ParseCheckbox(raw string) (*bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, true
	case "on", "true", "1", "yes":
		v := true
		return &v, true
	case "off", "false", "0", "no":
		v := false
		return &v, true
	default:
		return nil, false
	}
}

type EventForm struct {
	Title     string `form:"title" binding:"required,max=100"`
	Content   string `form:"content" binding:"required"`
	Color     string `form:"event_color" binding:"omitempty,eventcolor"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

func (f EventForm) Input() (services.EventInput, error) {
	input := services.EventInput{
		Title:   f.Title,
		Content: f.Content,
		Color:   models.EventColor(f.Color),
	}
	verr := &services.ValidationError{}

	var err error
	if input.StartTime, err = time.ParseInLocation(DateTimeLayout, strings.TrimSpace(f.StartTime), time.Local); err != nil {
		verr.Add("start_time", MsgInvalidTime)
	}
	if input.EndTime, err = time.ParseInLocation(DateTimeLayout, strings.TrimSpace(f.EndTime), time.Local); err != nil {
		verr.Add("end_time", MsgInvalidTime)
	}

	return input, verr.Err()
}

type PlayerForm struct {
	Name     string `form:"name" binding:"required,max=100"`
	PLTeam   uint64 `form:"pl_team" binding:"required"`
	PLPot    string `form:"pl_pot" binding:"required,max=100"`
	LLTeam   uint64 `form:"ll_team" binding:"required"`
	LLPot    string `form:"ll_pot" binding:"required,max=100"`
	BLTeam   uint64 `form:"bl_team" binding:"required"`
	BLPot    string `form:"bl_pot" binding:"required,max=100"`
	SATeam   uint64 `form:"sa_team" binding:"required"`
	SAPot    string `form:"sa_pot" binding:"required,max=100"`
	CupPoint *int   `form:"cup_point" binding:"required"`
}

func (f PlayerForm) Input() services.PlayerInput {
	input := services.PlayerInput{
		Name:     f.Name,
		PLTeamID: f.PLTeam,
		PLPot:    f.PLPot,
		LLTeamID: f.LLTeam,
		LLPot:    f.LLPot,
		BLTeamID: f.BLTeam,
		BLPot:    f.BLPot,
		SATeamID: f.SATeam,
		SAPot:    f.SAPot,
	}
	if f.CupPoint != nil {
		input.CupPoint = *f.CupPoint
	}
	return input
}
