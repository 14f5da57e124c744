package dto

import (
	"time"

	"github.com/yukikurage/homebase/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nick_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ProfileDTO is the signed-in user's own view of the account
type ProfileDTO struct {
	UserDTO
	Email       string     `json:"email"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `json:"date_joined"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Nickname: user.Nickname,
	}
	if user.Profile != nil {
		dto.AvatarURL = user.Profile.AvatarURL
	}
	return dto
}

func ToProfileDTO(user models.User) ProfileDTO {
	return ProfileDTO{
		UserDTO:     ToUserDTO(user),
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		LastLogin:   user.LastLogin,
		DateJoined:  user.CreatedAt,
	}
}

// authorDTO returns nil when the relation was not loaded
func authorDTO(user models.User) *UserDTO {
	if user.ID == 0 {
		return nil
	}
	dto := ToUserDTO(user)
	return &dto
}
