package constants

// Session and context keys
const (
	SessionCookieName = "homebase_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Account rules
const (
	MinPasswordLength = 8
	MaxUsernameLength = 150
	MaxNicknameLength = 30
	AvatarMaxSize     = 512
)

// MaxUploadBytes caps multipart bodies on upload routes.
const MaxUploadBytes = 10 << 20

// Page sizes per listing
const (
	MinPageSize     = 1
	BlogPageSize    = 5
	ProfilePageSize = 5
	MemoPageSize    = 6
)

// Named redirect targets
const (
	RootPath       = "/"
	LoginPath      = "/accounts/login"
	ProfilePath    = "/accounts/profile"
	BlogIndexPath  = "/blog"
	MemoIndexPath  = "/memo"
	CalendarPath   = "/schedule"
	LeaguePath     = "/league"
	PlayerListPath = "/league/player"
)
