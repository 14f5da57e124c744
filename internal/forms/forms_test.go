package forms

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
)

func bindForm(t *testing.T, values url.Values, obj interface{}) error {
	t.Helper()
	require.NoError(t, RegisterValidators())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.ShouldBind(obj)
}

func TestRegisterValidators_Idempotent(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators())
}

func TestFieldErrors_UsesFormNames(t *testing.T) {
	var form SignupForm
	err := bindForm(t, url.Values{"username": {"minsu"}, "email": {"not-an-email"}}, &form)
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, []string{MsgInvalidEmail}, fields["email"])
	assert.Equal(t, []string{MsgRequired}, fields["nick_name"])
	assert.Equal(t, []string{MsgRequired}, fields["password1"])
	assert.NotContains(t, fields, "username")
}

func TestFieldErrors_NotValidation(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
}

func TestEventForm_Color(t *testing.T) {
	values := url.Values{
		"title":       {"회의"},
		"content":     {"안건"},
		"event_color": {"text-bg-rainbow"},
		"start_time":  {"2025-03-01T10:00"},
		"end_time":    {"2025-03-01T11:00"},
	}
	var form EventForm
	err := bindForm(t, values, &form)
	require.Error(t, err)
	assert.Equal(t, []string{MsgInvalidChoice}, FieldErrors(err)["event_color"])

	values.Set("event_color", string(models.EventColorWarning))
	require.NoError(t, bindForm(t, values, &form))

	input, err := form.Input()
	require.NoError(t, err)
	assert.Equal(t, models.EventColorWarning, input.Color)
	assert.Equal(t, 10, input.StartTime.Hour())
	assert.Equal(t, 11, input.EndTime.Hour())
}

func TestEventForm_BadTime(t *testing.T) {
	form := EventForm{Title: "t", Content: "c", StartTime: "2025-03-01 10:00", EndTime: "2025-03-01T11:00"}
	_, err := form.Input()

	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "start_time")
	assert.NotContains(t, verr.Fields, "end_time")
}

func TestMemoForm_Input(t *testing.T) {
	input, err := MemoForm{Title: "t", Content: "c"}.Input()
	require.NoError(t, err)
	assert.Nil(t, input.Status)
	assert.Nil(t, input.DueDate)

	input, err = MemoForm{Title: "t", Content: "c", Status: "on", DueDate: "2025-05-05"}.Input()
	require.NoError(t, err)
	require.NotNil(t, input.Status)
	assert.True(t, *input.Status)
	require.NotNil(t, input.DueDate)
	assert.Equal(t, 5, input.DueDate.Day())

	_, err = MemoForm{Title: "t", Content: "c", Status: "maybe", DueDate: "05/05/2025"}.Input()
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
	assert.Contains(t, verr.Fields, "due_date")
}

func TestPlayerForm_CupPointRequired(t *testing.T) {
	values := url.Values{
		"name":    {"철수"},
		"pl_team": {"1"}, "pl_pot": {"1포트"},
		"ll_team": {"1"}, "ll_pot": {"1포트"},
		"bl_team": {"1"}, "bl_pot": {"1포트"},
		"sa_team": {"1"}, "sa_pot": {"1포트"},
	}
	var form PlayerForm
	err := bindForm(t, values, &form)
	require.Error(t, err)
	assert.Equal(t, []string{MsgRequired}, FieldErrors(err)["cup_point"])

	values.Set("cup_point", "0")
	form = PlayerForm{}
	require.NoError(t, bindForm(t, values, &form))
	assert.Equal(t, 0, form.Input().CupPoint)
	assert.Equal(t, uint64(1), form.Input().SATeamID)
}

func TestSpecs(t *testing.T) {
	assert.Equal(t, "새 메모", MemoSpec(nil).Title)
	assert.Equal(t, "메모 수정", MemoSpec(&models.Memo{Title: "x"}).Title)
	assert.Equal(t, "플레이어 정보 수정", PlayerSpec(&models.Player{}, nil).Title)
	assert.Len(t, PlayerSpec(nil, nil).Fields, 10)
	assert.Len(t, EventColorChoices(), 6)

	first := EventSpec(nil)
	first.Initial["title"] = "mutated"
	assert.NotContains(t, EventSpec(nil).Initial, "title", "specs are built per call")
}
