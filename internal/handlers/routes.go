package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/middleware"
)

// Handlers groups every handler mounted by RegisterRoutes.
type Handlers struct {
	Accounts *AccountHandler
	Blog     *BlogHandler
	Memo     *MemoHandler
	Schedule *ScheduleHandler
	League   *LeagueHandler
}

// RegisterRoutes mounts the whole site on r. The session middleware must
// already be installed.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	auth := middleware.RequireAuth()
	staff := middleware.RequireStaff()
	superuser := middleware.RequireSuperuser()
	upload := middleware.LimitBody(constants.MaxUploadBytes)

	r.GET("/health", Health)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, constants.BlogIndexPath)
	})
	r.GET("/notices", Notices)

	// Accounts
	accounts := r.Group("/accounts")
	{
		accounts.GET("/signup", middleware.OptionalAuth(), h.Accounts.SignupForm)
		accounts.POST("/signup", middleware.OptionalAuth(), h.Accounts.Signup)
		accounts.GET("/login", middleware.OptionalAuth(), h.Accounts.LoginForm)
		accounts.POST("/login", h.Accounts.Login)
		accounts.POST("/logout", h.Accounts.Logout)

		profile := accounts.Group("", auth)
		profile.GET("/profile", h.Accounts.Profile)
		profile.GET("/profile/edit", h.Accounts.AvatarForm)
		profile.POST("/profile/edit", upload, h.Accounts.UpdateAvatar)
		profile.GET("/user/edit", h.Accounts.NicknameForm)
		profile.POST("/user/edit", h.Accounts.UpdateNickname)
		profile.GET("/user/password_edit", h.Accounts.PasswordForm)
		profile.POST("/user/password_edit", h.Accounts.ChangePassword)
		profile.GET("/profile/posted", h.Accounts.Posted)
		profile.GET("/profile/commented", h.Accounts.Commented)
		profile.GET("/profile/reply", h.Accounts.Replied)
	}

	// Blog. :id names the post, comment or reply depending on the sub path.
	blog := r.Group("/blog")
	{
		blog.GET("", h.Blog.Index)
		blog.GET("/category/:name", h.Blog.Category)
		blog.POST("/categories", auth, superuser, h.Blog.CreateCategory)
		blog.GET("/post", auth, h.Blog.NewPostForm)
		blog.POST("/post", auth, upload, h.Blog.CreatePost)
		blog.GET("/:id", middleware.OptionalAuth(), h.Blog.Detail)
		blog.GET("/:id/edit", auth, h.Blog.EditPostForm)
		blog.POST("/:id/edit", auth, upload, h.Blog.UpdatePost)
		blog.POST("/:id/delete", auth, h.Blog.DeletePost)
		blog.POST("/:id/like", auth, h.Blog.LikePost)

		blog.GET("/:id/comment/new", auth, h.Blog.NewCommentForm)
		blog.POST("/:id/comment/new", auth, h.Blog.CreateComment)
		blog.GET("/:id/comment/edit", auth, h.Blog.EditCommentForm)
		blog.POST("/:id/comment/edit", auth, h.Blog.UpdateComment)
		blog.POST("/:id/comment/delete", auth, h.Blog.DeleteComment)
		blog.POST("/:id/comment/like", auth, h.Blog.LikeComment)

		blog.GET("/:id/reply/new", auth, h.Blog.NewReplyForm)
		blog.POST("/:id/reply/new", auth, h.Blog.CreateReply)
		blog.GET("/:id/reply/edit", auth, h.Blog.EditReplyForm)
		blog.POST("/:id/reply/edit", auth, h.Blog.UpdateReply)
		blog.POST("/:id/reply/delete", auth, h.Blog.DeleteReply)
		blog.POST("/:id/reply/like", auth, h.Blog.LikeReply)
	}

	// Memo board, staff only
	memo := r.Group("/memo", auth, staff)
	{
		memo.GET("", h.Memo.Index)
		memo.GET("/status/:status", h.Memo.ByStatus)
		memo.GET("/new", h.Memo.NewForm)
		memo.POST("/new", h.Memo.Create)
		memo.GET("/:id/edit", h.Memo.EditForm)
		memo.POST("/:id/edit", h.Memo.Update)
		memo.POST("/:id/delete", h.Memo.Delete)
		memo.POST("/:id/change_status", h.Memo.ChangeStatus)
		memo.POST("/:id/like", h.Memo.Like)
	}

	// Schedule, staff only
	schedule := r.Group("/schedule", auth, staff)
	{
		schedule.GET("", h.Schedule.Calendar)
		schedule.GET("/event/new", h.Schedule.NewForm)
		schedule.POST("/event/new", h.Schedule.Create)
		schedule.GET("/event/edit/:id", h.Schedule.EditForm)
		schedule.POST("/event/edit/:id", h.Schedule.Update)
		schedule.POST("/event/delete/:id", h.Schedule.Delete)
		schedule.GET("/event/:id", h.Schedule.Detail)
	}

	// League
	league := r.Group("/league")
	{
		league.GET("", h.League.Index)
		league.GET("/player", h.League.Players)
		league.GET("/player/new", auth, h.League.NewPlayerForm)
		league.POST("/player/new", auth, h.League.CreatePlayer)
		league.GET("/player/edit/:id", auth, h.League.EditPlayerForm)
		league.POST("/player/edit/:id", auth, h.League.UpdatePlayer)
		league.POST("/player/update", auth, staff, h.League.RefreshPlayers)
		league.POST("/league_create/:league_id", auth, staff, h.League.CreateLeague)
		league.POST("/league_update/:league_id", auth, staff, h.League.UpdateLeague)
		league.POST("/league_create_all", auth, staff, h.League.CreateAll)
		league.POST("/league_update_all", auth, staff, h.League.UpdateAll)
	}
}
