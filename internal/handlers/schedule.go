package handlers

import (
	"fmt"
	"net/http"
	"time"

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

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	logger          *zap.Logger
	now             func() time.Time
}

func NewScheduleHandler(scheduleService *services.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		logger:          logger,
		now:             time.Now,
	}
}

func eventURL(id uint64) string {
	return fmt.Sprintf("%s/event/%d", constants.CalendarPath, id)
}

// Calendar renders the month given by ?month=YYYY-M, the current one by default.
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	first, err := utils.ParseMonth(c.Query("month"), h.now())
	if err != nil {
		apierrors.InvalidFormat(c, "month 값은 YYYY-M 형식이어야 합니다.")
		return
	}

	month, err := h.scheduleService.Calendar(first)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCalendarDTO(month))
}

func (h *ScheduleHandler) load(c *gin.Context) (*models.Event, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	event, err := h.scheduleService.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return event, true
}

func (h *ScheduleHandler) Detail(c *gin.Context) {
	event, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

func (h *ScheduleHandler) NewForm(c *gin.Context) {
	c.JSON(http.StatusOK, forms.EventSpec(nil))
}

func (h *ScheduleHandler) bind(c *gin.Context) (services.EventInput, bool) {
	var form forms.EventForm
	if !bindForm(c, &form) {
		return services.EventInput{}, false
	}
	input, err := form.Input()
	if err != nil {
		respondError(c, h.logger, err)
		return services.EventInput{}, false
	}
	return input, true
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	input, ok := h.bind(c)
	if !ok {
		return
	}
	if _, err := h.scheduleService.Create(userID, input); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "새 일정이 등록 되었습니다.", constants.CalendarPath)
}

func (h *ScheduleHandler) EditForm(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	event, ok := h.load(c)
	if !ok {
		return
	}
	if !services.CanMutate(userID, event) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, constants.CalendarPath)
		return
	}
	c.JSON(http.StatusOK, forms.EventSpec(event))
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	event, ok := h.load(c)
	if !ok {
		return
	}
	if !services.CanMutate(userID, event) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, constants.CalendarPath)
		return
	}
	input, ok := h.bind(c)
	if !ok {
		return
	}

	err := h.scheduleService.Update(userID, event, input)
	if !denyOrFail(c, h.logger, err, msgEditDenied, constants.CalendarPath) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "일정이 수정 되었습니다.", constants.CalendarPath)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	event, ok := h.load(c)
	if !ok {
		return
	}

	err := h.scheduleService.Delete(userID, event)
	if !denyOrFail(c, h.logger, err, msgDeleteDenied, eventURL(event.ID)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "일정이 삭제 되었습니다.", constants.CalendarPath)
}
