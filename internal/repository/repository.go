package repository

import (
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and its empty profile within a single
	// transaction.
	CreateWithProfile(user *models.User) error

	// FindByID finds a user by ID with the profile preloaded
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// EmailTaken reports whether another user already uses email (case-insensitive)
	EmailTaken(email string, excludeID uint64) (bool, error)

	// NicknameTaken reports whether another user already uses nickname (case-insensitive)
	NicknameTaken(nickname string, excludeID uint64) (bool, error)

	// Update updates a user
	Update(user *models.User) error

	// TouchLastLogin stamps the last successful login
	TouchLastLogin(id uint64, at time.Time) error

	// SaveProfile creates or updates a profile
	SaveProfile(profile *models.Profile) error
}

// PostFilter holds filtering options for listing posts
type PostFilter struct {
	CategoryID *uint64
	AuthorID   *uint64
}

// PostRepository defines the interface for blog post data access
type PostRepository interface {
	// Create creates a post and links its tags
	Create(post *models.Post, tagIDs []uint64) error

	// FindByID finds a post by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Post, error)

	// Count counts the posts matching filter
	Count(filter PostFilter) (int64, error)

	// List retrieves one page of posts, newest first
	List(filter PostFilter, page utils.Page) ([]models.Post, error)

	// Update updates a post and replaces its tags
	Update(post *models.Post, tagIDs []uint64) error

	// Delete removes a post with its comments, replies and link rows
	Delete(id uint64) error

	// Adjacent finds the posts created right before and after post
	Adjacent(post *models.Post) (prev, next *models.Post, err error)
}

// CategoryRepository defines the interface for blog categories and tags
type CategoryRepository interface {
	// Create creates a category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// FindByName finds a category by its unique name
	FindByName(name string) (*models.Category, error)

	// List lists all categories by name
	List() ([]models.Category, error)

	// ListTags lists all tags by name
	ListTags() ([]models.Tag, error)

	// CountTags counts how many of the given tag IDs exist
	CountTags(ids []uint64) (int64, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id uint64, preload ...string) (*models.Comment, error)
	Update(comment *models.Comment) error

	// Delete removes a comment with its replies and link rows
	Delete(id uint64) error

	CountByAuthor(authorID uint64) (int64, error)
	ListByAuthor(authorID uint64, page utils.Page) ([]models.Comment, error)
}

// ReplyRepository defines the interface for reply data access
type ReplyRepository interface {
	Create(reply *models.Reply) error
	FindByID(id uint64, preload ...string) (*models.Reply, error)
	Update(reply *models.Reply) error
	Delete(id uint64) error
	CountByAuthor(authorID uint64) (int64, error)
	ListByAuthor(authorID uint64, page utils.Page) ([]models.Reply, error)
}

// MemoFilter holds filtering options for listing memos
type MemoFilter struct {
	Status *bool
}

// MemoRepository defines the interface for memo data access
type MemoRepository interface {
	Create(memo *models.Memo) error
	FindByID(id uint64) (*models.Memo, error)
	Count(filter MemoFilter) (int64, error)
	List(filter MemoFilter, page utils.Page) ([]models.Memo, error)
	Update(memo *models.Memo) error
	Delete(id uint64) error
}

// EventRepository defines the interface for schedule event data access
type EventRepository interface {
	Create(event *models.Event) error
	FindByID(id uint64) (*models.Event, error)

	// ListStartingBetween lists events whose start lies in [from, to), earliest first
	ListStartingBetween(from, to time.Time) ([]models.Event, error)

	Update(event *models.Event) error
	Delete(id uint64) error
}

// StandingRepository defines the interface for the per-league standings tables
type StandingRepository interface {
	// Count counts the team rows of league
	Count(league models.League) (int64, error)

	// CreateAll inserts one row per team
	CreateAll(league models.League, rows []models.TeamStanding) error

	// UpdateByTeamID overwrites the volatile columns of the row matching
	// row.TeamID and reports how many rows changed
	UpdateByTeamID(league models.League, row models.TeamStanding) (int64, error)

	// List lists the rows of league by rank
	List(league models.League) ([]models.TeamStanding, error)

	// Exists reports whether league holds a row with the given ID
	Exists(league models.League, id uint64) (bool, error)
}

// PlayerRepository defines the interface for scoreboard player data access
type PlayerRepository interface {
	Create(player *models.Player) error

	// FindByID finds a player with the four team rows preloaded
	FindByID(id uint64) (*models.Player, error)

	// List lists players by total points then goal difference, teams preloaded
	List() ([]models.Player, error)

	Update(player *models.Player) error

	// UpdateTotals writes the aggregate columns of one player
	UpdateTotals(id uint64, totals models.Totals) error
}

// LikeRepository toggles and counts rows of the like join tables
type LikeRepository interface {
	// Toggle adds userID to the like-set of objectID, or removes it when
	// already present. It reports whether the user likes the object afterwards.
	Toggle(target LikeTarget, objectID, userID uint64) (bool, error)

	// Count counts the users liking objectID
	Count(target LikeTarget, objectID uint64) (int64, error)

	// Likes reports whether userID likes objectID
	Likes(target LikeTarget, objectID, userID uint64) (bool, error)
}
