package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/homebase/internal/errors"
	"github.com/yukikurage/homebase/internal/football"
	"github.com/yukikurage/homebase/internal/forms"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/services"
	"github.com/yukikurage/homebase/internal/storage"
	"go.uber.org/zap"
)

const (
	msgEditDenied   = "수정권한이 없습니다."
	msgDeleteDenied = "삭제권한이 없습니다."
)

// parseID reads a numeric path parameter. Anything else is a missing page.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// bindForm binds the request body into obj and answers 400 on failure.
func bindForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		if fields := forms.FieldErrors(err); fields != nil {
			apierrors.ValidationFailed(c, fields)
		} else {
			respondBadBody(c, err)
		}
		return false
	}
	return true
}

// respondBadBody answers a request body that could not be parsed.
func respondBadBody(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apierrors.PayloadTooLarge(c, "")
		return
	}
	apierrors.InvalidFormat(c, "요청 형식이 올바르지 않습니다.")
}

// respondError maps service errors that are not handled by redirects.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Fields)
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrReplyNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrMemoNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	default:
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// denyOrFail redirects with notice when err is a permission failure and
// responds through respondError otherwise. It reports whether err was nil.
func denyOrFail(c *gin.Context, logger *zap.Logger, err error, notice, location string) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, services.ErrPermissionDenied) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, notice, location)
		return false
	}
	respondError(c, logger, err)
	return false
}

// formFile opens an optional upload. A missing field yields nil.
func formFile(c *gin.Context, field string) (*storage.File, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*storage.File, func(), error) {
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &storage.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      f,
	}, func() { f.Close() }, nil
}

// providerNotice turns a standings provider failure into a user facing message.
func providerNotice(leagueName string, err error) string {
	switch {
	case errors.Is(err, football.ErrLeagueNotFound):
		return leagueName + " 데이터를 찾을 수 없습니다."
	case errors.Is(err, football.ErrProviderTimeout):
		return leagueName + " 데이터 요청 시간이 초과되었습니다."
	case errors.Is(err, football.ErrProviderRejected):
		return leagueName + " 데이터 요청이 거부되었습니다."
	case errors.Is(err, football.ErrMalformedPayload):
		return leagueName + " 응답 형식이 올바르지 않습니다."
	default:
		return leagueName + " 데이터 동기화에 실패했습니다."
	}
}
