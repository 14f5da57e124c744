package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/repository"
	"github.com/yukikurage/homebase/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

const (
	MsgEmailTaken       = "이미 등록된 이메일 주소 입니다."
	MsgNicknameTaken    = "이미 등록된 닉네임 입니다."
	MsgUsernameTaken    = "해당 사용자 이름은 이미 존재합니다."
	MsgPasswordMismatch = "비밀번호가 일치하지 않습니다."
	MsgOldPasswordWrong = "기존 비밀번호가 잘못 입력되었습니다. 다시 입력하세요."
	MsgInvalidLogin     = "올바른 사용자 이름와 비밀번호를 입력하십시오."
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	uploader storage.FileUploader
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, uploader storage.FileUploader, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username  string
	Email     string
	Nickname  string
	Password1 string
	Password2 string
}

// Signup validates every field, reporting all problems at once, and creates
// the user with an empty profile.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	nickname := strings.TrimSpace(input.Nickname)

	verr := &ValidationError{}

	switch {
	case username == "":
		verr.Add("username", "필수 항목입니다.")
	case utf8.RuneCountInString(username) > constants.MaxUsernameLength:
		verr.Add("username", fmt.Sprintf("%d자 이하로 입력해 주세요.", constants.MaxUsernameLength))
	case !usernamePattern.MatchString(username):
		verr.Add("username", "문자, 숫자 그리고 @/./+/-/_ 만 사용할 수 있습니다.")
	default:
		if _, err := s.userRepo.FindByUsername(username); err == nil {
			verr.Add("username", MsgUsernameTaken)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	if email == "" {
		verr.Add("email", "필수 항목입니다.")
	} else if taken, err := s.userRepo.EmailTaken(email, 0); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		verr.Add("email", MsgEmailTaken)
	}

	if err := s.checkNickname(nickname, 0, verr); err != nil {
		return nil, err
	}

	checkNewPassword("password", input.Password1, input.Password2, verr)

	if err := verr.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	now := s.now()
	user := &models.User{
		Username:     username,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: string(hashedPassword),
		LastLogin:    &now,
	}

	if err := s.userRepo.CreateWithProfile(user); err != nil {
		s.logger.Error("signup failed", zap.String("username", username), zap.Error(err))
		return nil, ErrFailedToCreateUser
	}

	s.logger.Info("user signed up", zap.Uint64("user_id", user.ID))
	return user, nil
}

func (s *AuthService) checkNickname(nickname string, excludeID uint64, verr *ValidationError) error {
	switch {
	case nickname == "":
		verr.Add("nick_name", "필수 항목입니다.")
	case utf8.RuneCountInString(nickname) > constants.MaxNicknameLength:
		verr.Add("nick_name", fmt.Sprintf("%d자 이하로 입력해 주세요.", constants.MaxNicknameLength))
	default:
		taken, err := s.userRepo.NicknameTaken(nickname, excludeID)
		if err != nil {
			return fmt.Errorf("failed to check nickname: %w", err)
		}
		if taken {
			verr.Add("nick_name", MsgNicknameTaken)
		}
	}
	return nil
}

// checkNewPassword validates a password pair. Errors are reported on
// <prefix>1 and <prefix>2.
func checkNewPassword(prefix, password1, password2 string, verr *ValidationError) {
	if password1 == "" {
		verr.Add(prefix+"1", "필수 항목입니다.")
		return
	}
	if password1 != password2 {
		verr.Add(prefix+"2", MsgPasswordMismatch)
		return
	}
	if utf8.RuneCountInString(password1) < constants.MinPasswordLength {
		verr.Add(prefix+"2", fmt.Sprintf("비밀번호가 너무 짧습니다. 최소 %d 문자를 포함해야 합니다.", constants.MinPasswordLength))
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		s.logger.Warn("failed to record last login", zap.Uint64("user_id", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

type ChangePasswordInput struct {
	OldPassword  string
	NewPassword1 string
	NewPassword2 string
}

// ChangePassword replaces the password of user after checking the old one.
func (s *AuthService) ChangePassword(user *models.User, input ChangePasswordInput) error {
	verr := &ValidationError{}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		verr.Add("old_password", MsgOldPasswordWrong)
	}
	checkNewPassword("new_password", input.NewPassword1, input.NewPassword2, verr)
	if err := verr.Err(); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateNickname changes the display name of user.
func (s *AuthService) UpdateNickname(user *models.User, nickname string) error {
	nickname = strings.TrimSpace(nickname)

	verr := &ValidationError{}
	if err := s.checkNickname(nickname, user.ID, verr); err != nil {
		return err
	}
	if err := verr.Err(); err != nil {
		return err
	}

	user.Nickname = nickname
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	return nil
}

// UpdateAvatar shrinks the uploaded picture, stores it as JPEG and replaces
// the previous avatar of user.
func (s *AuthService) UpdateAvatar(ctx context.Context, user *models.User, file storage.File) error {
	data, err := storage.ResizeToJPEG(file.Reader, constants.AvatarMaxSize)
	if err != nil {
		return FieldError("avatar", MsgInvalidImage)
	}

	key := storage.UploadKey("accounts", "profile", s.now(), "avatar.jpg")
	result, err := s.uploader.Upload(ctx, key, "image/jpeg", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to upload avatar: %w", err)
	}

	profile := user.Profile
	if profile == nil {
		profile = &models.Profile{UserID: user.ID}
	}
	previous := profile.AvatarKey
	profile.AvatarKey = result.Key
	profile.AvatarURL = result.Location

	if err := s.userRepo.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	user.Profile = profile

	if previous != "" && previous != result.Key {
		if err := s.uploader.Delete(ctx, previous); err != nil {
			s.logger.Warn("failed to delete previous avatar", zap.String("key", previous), zap.Error(err))
		}
	}
	return nil
}
