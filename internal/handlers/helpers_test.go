package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/database"
	"github.com/yukikurage/homebase/internal/forms"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/repository"
	"github.com/yukikurage/homebase/internal/services"
	"github.com/yukikurage/homebase/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "correct-horse-42"

type fakeProvider struct {
	tables map[int][]services.ExternalTeamStanding
	errs   map[int]error
	calls  []int
}

func (f *fakeProvider) FetchStandings(ctx context.Context, leagueID, season int) ([]services.ExternalTeamStanding, error) {
	f.calls = append(f.calls, leagueID)
	if err := f.errs[leagueID]; err != nil {
		return nil, err
	}
	return f.tables[leagueID], nil
}

func standingRow(teamID, name string, rank, points int) services.ExternalTeamStanding {
	return services.ExternalTeamStanding{
		TeamID:    teamID,
		TeamName:  name,
		Rank:      rank,
		Points:    points,
		Played:    10,
		Win:       5,
		Draw:      2,
		Lose:      3,
		GoalsDiff: 4,
		UpdatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func defaultTables() map[int][]services.ExternalTeamStanding {
	return map[int][]services.ExternalTeamStanding{
		models.LeaguePremierLeague: {standingRow("40", "Liverpool", 1, 70), standingRow("42", "Arsenal", 2, 58)},
		models.LeagueLaLiga:        {standingRow("529", "Barcelona", 1, 66)},
		models.LeagueBundesLiga:    {standingRow("157", "Bayern Munich", 1, 65)},
		models.LeagueSerieA:        {standingRow("492", "Napoli", 1, 64)},
	}
}

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	provider *fakeProvider
	auth     *services.AuthService
	blog     *services.BlogService
	memo     *services.MemoService
	schedule *services.ScheduleService
	league   *services.LeagueService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, forms.RegisterValidators())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	database.SetDB(db)
	require.NoError(t, database.Migrate(zap.NewNop()))

	uploader, err := storage.NewLocalUploader(t.TempDir(), "/media")
	require.NoError(t, err)

	logger := zap.NewNop()
	likeRepo := repository.NewLikeRepository(db)
	env := &testEnv{
		db:       db,
		provider: &fakeProvider{tables: defaultTables(), errs: map[int]error{}},
	}
	env.auth = services.NewAuthService(repository.NewUserRepository(db), uploader, logger)
	env.blog = services.NewBlogService(services.BlogRepositories{
		Posts:      repository.NewPostRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Comments:   repository.NewCommentRepository(db),
		Replies:    repository.NewReplyRepository(db),
		Likes:      likeRepo,
	}, uploader, logger)
	env.memo = services.NewMemoService(repository.NewMemoRepository(db), likeRepo)
	env.schedule = services.NewScheduleService(repository.NewEventRepository(db))
	env.league = services.NewLeagueService(env.provider,
		repository.NewStandingRepository(db),
		repository.NewPlayerRepository(db),
		2025,
		logger,
	)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, Handlers{
		Accounts: NewAccountHandler(env.auth, env.blog, logger),
		Blog:     NewBlogHandler(env.blog, logger),
		Memo:     NewMemoHandler(env.memo, logger),
		Schedule: NewScheduleHandler(env.schedule, logger),
		League:   NewLeagueHandler(env.league, logger),
	})
	env.router = r

	return env
}

// createUser signs a user up through the service and applies the role flags.
func (e *testEnv) createUser(t *testing.T, username string, staff, superuser bool) *models.User {
	t.Helper()
	user, err := e.auth.Signup(services.SignupInput{
		Username:  username,
		Email:     username + "@example.com",
		Nickname:  username,
		Password1: testPassword,
		Password2: testPassword,
	})
	require.NoError(t, err)

	if staff || superuser {
		require.NoError(t, e.db.Model(user).Updates(map[string]interface{}{
			"is_staff":     staff,
			"is_superuser": superuser,
		}).Error)
	}
	return user
}

// client replays the session cookie between requests.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func (e *testEnv) client(t *testing.T) *client {
	return &client{t: t, router: e.router, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	setHeaders(req, headers)
	return c.do(req)
}

func (c *client) post(path string, values url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	setHeaders(req, headers)
	return c.do(req)
}

// upload posts values as multipart/form-data with one attached file.
func (c *client) upload(path string, values url.Values, field, filename string, content []byte) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vs := range values {
		for _, v := range vs {
			require.NoError(c.t, mw.WriteField(key, v))
		}
	}
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(c.t, err)
	_, err = part.Write(content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func setHeaders(req *http.Request, headers []string) {
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
}

func (c *client) login(username string) {
	c.t.Helper()
	w := c.post(constants.LoginPath, url.Values{
		"username": {username},
		"password": {testPassword},
	})
	require.Equal(c.t, http.StatusSeeOther, w.Code, w.Body.String())
}

// notices pops the queued flash messages.
func (c *client) notices() []middleware.Notice {
	c.t.Helper()
	w := c.get("/notices")
	require.Equal(c.t, http.StatusOK, w.Code)

	var body struct {
		Notices []middleware.Notice `json:"notices"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Notices
}

func messages(notices []middleware.Notice) []string {
	out := make([]string, 0, len(notices))
	for _, n := range notices {
		out = append(out, n.Message)
	}
	return out
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
