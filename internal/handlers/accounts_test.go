package handlers

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/homebase/internal/dto"
	apierrors "github.com/yukikurage/homebase/internal/errors"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/services"
)

func signupValues(username, email, nickname string) url.Values {
	return url.Values{
		"username":  {username},
		"email":     {email},
		"nick_name": {nickname},
		"password1": {testPassword},
		"password2": {testPassword},
	}
}

func TestAccountHandler_Signup(t *testing.T) {
	env := setupTestEnv(t)
	c := env.client(t)

	w := c.post("/accounts/signup", signupValues("newuser", "new@example.com", "newbie"))
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/accounts/profile", w.Header().Get("Location"))

	notices := c.notices()
	require.Len(t, notices, 2)
	for _, n := range notices {
		assert.Equal(t, middleware.NoticeSuccess, n.Level)
	}
	assert.Empty(t, c.notices())

	w = c.get("/accounts/profile")
	require.Equal(t, http.StatusOK, w.Code)
	var profile dto.ProfileDTO
	decode(t, w, &profile)
	assert.Equal(t, "newuser", profile.Username)
	assert.Equal(t, "newbie", profile.Nickname)
	assert.Equal(t, "new@example.com", profile.Email)
}

func TestAccountHandler_SignupDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "first", false, false)
	c := env.client(t)

	w := c.post("/accounts/signup", signupValues("second", "first@example.com", "second"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code    string              `json:"code"`
		Details map[string][]string `json:"details"`
	}
	decode(t, w, &resp)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, resp.Code)
	assert.Equal(t, []string{services.MsgEmailTaken}, resp.Details["email"])
}

func TestAccountHandler_SignupMissingFields(t *testing.T) {
	env := setupTestEnv(t)
	c := env.client(t)

	w := c.post("/accounts/signup", url.Values{"username": {"someone"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Details map[string][]string `json:"details"`
	}
	decode(t, w, &resp)
	assert.Contains(t, resp.Details, "email")
	assert.Contains(t, resp.Details, "nick_name")
}

func TestAccountHandler_LoginRedirectsToNext(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)

	w := c.post("/accounts/login?next=%2Fblog%2F3", url.Values{
		"username": {"alice"},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/blog/3", w.Header().Get("Location"))

	w = c.get("/accounts/profile")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccountHandler_LoginRejectsForeignNext(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)

	w := c.post("/accounts/login?next=%2F%2Fevil.example.com", url.Values{
		"username": {"alice"},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/accounts/profile", w.Header().Get("Location"))
}

func TestAccountHandler_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)

	w := c.post("/accounts/login", url.Values{
		"username": {"alice"},
		"password": {"wrong-password"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code string `json:"code"`
	}
	decode(t, w, &resp)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, resp.Code)
}

func TestAccountHandler_LogoutEndsSession(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)
	c.login("alice")

	w := c.post("/accounts/logout", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/accounts/login", w.Header().Get("Location"))
	assert.Equal(t, []string{"로그아웃 완료."}, messages(c.notices()))

	w = c.get("/accounts/profile")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRequireAuth_RedirectsToLogin(t *testing.T) {
	env := setupTestEnv(t)
	c := env.client(t)

	w := c.get("/blog/post")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login?next=%2Fblog%2Fpost", w.Header().Get("Location"))
}

func TestAccountHandler_UpdateNickname(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	env.createUser(t, "bob", false, false)
	c := env.client(t)
	c.login("alice")

	w := c.post("/accounts/user/edit", url.Values{"nick_name": {"bob"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = c.post("/accounts/user/edit", url.Values{"nick_name": {"앨리스"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.get("/accounts/profile")
	var profile dto.ProfileDTO
	decode(t, w, &profile)
	assert.Equal(t, "앨리스", profile.Nickname)
}

func TestAccountHandler_ChangePasswordKeepsSession(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)
	c.login("alice")

	w := c.post("/accounts/user/password_edit", url.Values{
		"old_password":  {testPassword},
		"new_password1": {"brand-new-pass-9"},
		"new_password2": {"brand-new-pass-9"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/accounts/profile", w.Header().Get("Location"))

	w = c.get("/accounts/profile")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccountHandler_UpdateAvatarRequiresFile(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)
	c.login("alice")

	w := c.post("/accounts/profile/edit", url.Values{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_UpdateAvatar(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)
	c.login("alice")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1024, 256))))

	w := c.upload("/accounts/profile/edit", nil, "avatar", "me.png", buf.Bytes())
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	w = c.get("/accounts/profile")
	var profile dto.ProfileDTO
	decode(t, w, &profile)
	assert.Contains(t, profile.AvatarURL, "/media/accounts/profile/")
	assert.Contains(t, profile.AvatarURL, ".jpg")
}

func TestAccountHandler_UpdateAvatarRejectsHugeImage(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", false, false)
	c := env.client(t)
	c.login("alice")

	// A 1×1 PNG whose header claims 12000×12000 pixels.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	data := buf.Bytes()
	binary.BigEndian.PutUint32(data[16:20], 12000)
	binary.BigEndian.PutUint32(data[20:24], 12000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	w := c.upload("/accounts/profile/edit", nil, "avatar", "huge.png", data)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Details map[string][]string `json:"details"`
	}
	decode(t, w, &resp)
	assert.Equal(t, []string{services.MsgInvalidImage}, resp.Details["avatar"])
}
