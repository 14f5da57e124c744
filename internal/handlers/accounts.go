package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/dto"
	apierrors "github.com/yukikurage/homebase/internal/errors"
	"github.com/yukikurage/homebase/internal/forms"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/repository"
	"github.com/yukikurage/homebase/internal/services"
	"github.com/yukikurage/homebase/internal/utils"
	"go.uber.org/zap"
)

// AccountHandler coordinates authentication and profile HTTP handlers.
type AccountHandler struct {
	authService *services.AuthService
	blogService *services.BlogService
	logger      *zap.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(authService *services.AuthService, blogService *services.BlogService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		blogService: blogService,
		logger:      logger,
	}
}

// safeNext accepts only same-site absolute paths.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.Contains(next, `\`) {
		return next
	}
	return constants.ProfilePath
}

func (h *AccountHandler) startSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

// SignupForm describes the signup form.
func (h *AccountHandler) SignupForm(c *gin.Context) {
	if _, ok := middleware.GetUser(c); ok {
		middleware.RedirectWithNotice(c, middleware.NoticeWarning, "이미 로그인 되어 있습니다.", constants.ProfilePath)
		return
	}
	c.JSON(http.StatusOK, forms.SignupSpec())
}

// Signup registers a new user and logs them in.
func (h *AccountHandler) Signup(c *gin.Context) {
	if _, ok := middleware.GetUser(c); ok {
		middleware.RedirectWithNotice(c, middleware.NoticeWarning, "이미 로그인 되어 있습니다.", constants.ProfilePath)
		return
	}

	var form forms.SignupForm
	if !bindForm(c, &form) {
		return
	}

	user, err := h.authService.Signup(form.Input())
	if err != nil {
		respondAuthError(c, h.logger, err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	middleware.AddNotice(c, middleware.NoticeSuccess, "회원가입을 환영합니다!")
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "회원가입과 동시에 로그인 지원", constants.ProfilePath)
}

// LoginForm describes the login form. Signed-in users are sent on.
func (h *AccountHandler) LoginForm(c *gin.Context) {
	if _, ok := middleware.GetUser(c); ok {
		middleware.Redirect(c, safeNext(c.Query("next")))
		return
	}
	c.JSON(http.StatusOK, forms.LoginSpec())
}

// Login authenticates a user and initializes the session.
func (h *AccountHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if !bindForm(c, &form) {
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		respondAuthError(c, h.logger, err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	middleware.Redirect(c, safeNext(c.Query("next")))
}

// Logout removes the authentication session.
func (h *AccountHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(constants.ContextKeyUserID)
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "로그아웃 완료.", constants.LoginPath)
}

// Profile returns the authenticated user.
func (h *AccountHandler) Profile(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileDTO(*user))
}

func (h *AccountHandler) AvatarForm(c *gin.Context) {
	c.JSON(http.StatusOK, forms.AvatarSpec())
}

// UpdateAvatar stores a new profile picture.
func (h *AccountHandler) UpdateAvatar(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	file, closeFile, err := formFile(c, "avatar")
	if err != nil {
		respondBadBody(c, err)
		return
	}
	defer closeFile()
	if file == nil {
		apierrors.ValidationFailed(c, map[string][]string{"avatar": {forms.MsgRequired}})
		return
	}

	if err := h.authService.UpdateAvatar(c.Request.Context(), user, *file); err != nil {
		respondAuthError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "프로필을 저장하였습니다.", constants.ProfilePath)
}

func (h *AccountHandler) NicknameForm(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	c.JSON(http.StatusOK, forms.NicknameSpec(user))
}

func (h *AccountHandler) UpdateNickname(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var form forms.NicknameForm
	if !bindForm(c, &form) {
		return
	}
	if err := h.authService.UpdateNickname(user, form.Nickname); err != nil {
		respondAuthError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "프로필을 저장하였습니다.", constants.ProfilePath)
}

func (h *AccountHandler) PasswordForm(c *gin.Context) {
	c.JSON(http.StatusOK, forms.PasswordChangeSpec())
}

// ChangePassword replaces the password. The session stays valid.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var form forms.PasswordChangeForm
	if !bindForm(c, &form) {
		return
	}
	if err := h.authService.ChangePassword(user, form.Input()); err != nil {
		respondAuthError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "비밀번호를 성공적으로 변경하였습니다.", constants.ProfilePath)
}

// Posted lists the posts written by the current user.
func (h *AccountHandler) Posted(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page, err := h.blogService.ListPosts(services.ListPostsInput{
		AuthorID: &userID,
		Page:     utils.GetPageNumber(c),
		PerPage:  constants.ProfilePageSize,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostListResponse(page))
}

func (h *AccountHandler) Commented(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page, err := h.blogService.ListCommentsByAuthor(userID, utils.GetPageNumber(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentListResponse(page))
}

func (h *AccountHandler) Replied(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page, err := h.blogService.ListRepliesByAuthor(userID, utils.GetPageNumber(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReplyListResponse(page))
}

func respondAuthError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusBadRequest, apierrors.NewAPIErrorWithDetails(
			apierrors.ErrCodeInvalidCredentials,
			services.MsgInvalidLogin,
			map[string][]string{"__all__": {services.MsgInvalidLogin}},
		))
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser),
		errors.Is(err, repository.ErrCreateUser),
		errors.Is(err, repository.ErrCreateProfile):
		logger.Error("account operation failed", zap.Error(err))
		apierrors.InternalError(c, err.Error())
	default:
		respondError(c, logger, err)
	}
}
