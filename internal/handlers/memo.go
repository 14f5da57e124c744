package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/dto"
	apierrors "github.com/yukikurage/homebase/internal/errors"
	"github.com/yukikurage/homebase/internal/forms"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
	"github.com/yukikurage/homebase/internal/utils"
	"go.uber.org/zap"
)

const msgMemoStatusChanged = "메모 상태가 변경 되었습니다."

type MemoHandler struct {
	memoService *services.MemoService
	logger      *zap.Logger
}

func NewMemoHandler(memoService *services.MemoService, logger *zap.Logger) *MemoHandler {
	return &MemoHandler{
		memoService: memoService,
		logger:      logger,
	}
}

// Index lists every memo.
func (h *MemoHandler) Index(c *gin.Context) {
	h.list(c, nil)
}

// ByStatus lists memos whose status matches :status ("true" or "false").
func (h *MemoHandler) ByStatus(c *gin.Context) {
	var status bool
	switch c.Param("status") {
	case "true":
		status = true
	case "false":
		status = false
	default:
		apierrors.NotFound(c, "")
		return
	}
	h.list(c, &status)
}

func (h *MemoHandler) list(c *gin.Context, status *bool) {
	page, err := h.memoService.List(status, utils.GetPageNumber(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemoListResponse(page, status))
}

func (h *MemoHandler) NewForm(c *gin.Context) {
	c.JSON(http.StatusOK, forms.MemoSpec(nil))
}

func (h *MemoHandler) bind(c *gin.Context) (services.MemoInput, bool) {
	var form forms.MemoForm
	if !bindForm(c, &form) {
		return services.MemoInput{}, false
	}
	input, err := form.Input()
	if err != nil {
		respondError(c, h.logger, err)
		return services.MemoInput{}, false
	}
	return input, true
}

func (h *MemoHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	input, ok := h.bind(c)
	if !ok {
		return
	}
	if _, err := h.memoService.Create(userID, input); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "새 메모가 작성 되었습니다.", constants.MemoIndexPath)
}

func (h *MemoHandler) load(c *gin.Context) (*models.Memo, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	memo, err := h.memoService.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return memo, true
}

// loadOwned resolves :id and sends anyone but the author back with notice.
func (h *MemoHandler) loadOwned(c *gin.Context, notice string) (*models.Memo, uint64, bool) {
	userID, _ := middleware.GetUserID(c)
	memo, ok := h.load(c)
	if !ok {
		return nil, 0, false
	}
	if !services.CanMutate(userID, memo) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, notice, middleware.RefererOr(c, constants.RootPath))
		return nil, 0, false
	}
	return memo, userID, true
}

func (h *MemoHandler) EditForm(c *gin.Context) {
	memo, _, ok := h.loadOwned(c, msgEditDenied)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, forms.MemoSpec(memo))
}

func (h *MemoHandler) Update(c *gin.Context) {
	memo, userID, ok := h.loadOwned(c, msgEditDenied)
	if !ok {
		return
	}
	input, ok := h.bind(c)
	if !ok {
		return
	}

	err := h.memoService.Update(userID, memo, input)
	if !denyOrFail(c, h.logger, err, msgEditDenied, middleware.RefererOr(c, constants.RootPath)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "메모가 수정 되었습니다.", constants.MemoIndexPath)
}

func (h *MemoHandler) Delete(c *gin.Context) {
	memo, userID, ok := h.loadOwned(c, msgDeleteDenied)
	if !ok {
		return
	}

	err := h.memoService.Delete(userID, memo)
	if !denyOrFail(c, h.logger, err, msgDeleteDenied, middleware.RefererOr(c, constants.RootPath)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "메모가 삭제 되었습니다.",
		middleware.RefererOr(c, constants.MemoIndexPath))
}

// ChangeStatus flips a memo between on-going and finished.
func (h *MemoHandler) ChangeStatus(c *gin.Context) {
	memo, userID, ok := h.loadOwned(c, msgEditDenied)
	if !ok {
		return
	}

	err := h.memoService.ChangeStatus(userID, memo)
	if !denyOrFail(c, h.logger, err, msgEditDenied, middleware.RefererOr(c, constants.RootPath)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, msgMemoStatusChanged,
		middleware.RefererOr(c, constants.MemoIndexPath))
}

func (h *MemoHandler) Like(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	memo, ok := h.load(c)
	if !ok {
		return
	}
	if _, err := h.memoService.ToggleLike(memo.ID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.Redirect(c, middleware.RefererOr(c, constants.MemoIndexPath))
}
