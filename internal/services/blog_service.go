package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/repository"
	"github.com/yukikurage/homebase/internal/storage"
	"github.com/yukikurage/homebase/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrCategoryExists = errors.New("category already exists")

// BlogService handles posts, comments, replies and their likes.
type BlogService struct {
	posts      repository.PostRepository
	comments   repository.CommentRepository
	replies    repository.ReplyRepository
	categories repository.CategoryRepository
	likes      repository.LikeRepository
	uploader   storage.FileUploader
	logger     *zap.Logger
	now        func() time.Time
}

type BlogRepositories struct {
	Posts      repository.PostRepository
	Comments   repository.CommentRepository
	Replies    repository.ReplyRepository
	Categories repository.CategoryRepository
	Likes      repository.LikeRepository
}

// NewBlogService creates a new BlogService
func NewBlogService(repos BlogRepositories, uploader storage.FileUploader, logger *zap.Logger) *BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{
		posts:      repos.Posts,
		comments:   repos.Comments,
		replies:    repos.Replies,
		categories: repos.Categories,
		likes:      repos.Likes,
		uploader:   uploader,
		logger:     logger,
		now:        time.Now,
	}
}

// ListPostsInput selects one page of posts. CategoryName and AuthorID are optional.
type ListPostsInput struct {
	CategoryName string
	AuthorID     *uint64
	Page         int
	PerPage      int
}

type PostPage struct {
	Posts      []models.Post
	Page       utils.Page
	Category   *models.Category
	Categories []models.Category
	TotalPosts int64
}

// ListPosts returns one page of posts together with the category sidebar.
func (s *BlogService) ListPosts(input ListPostsInput) (*PostPage, error) {
	result := &PostPage{}
	filter := repository.PostFilter{AuthorID: input.AuthorID}

	if input.CategoryName != "" {
		category, err := s.categories.FindByName(input.CategoryName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		result.Category = category
		filter.CategoryID = &category.ID
	}

	perPage := input.PerPage
	if perPage == 0 {
		perPage = constants.BlogPageSize
	}

	total, err := s.posts.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	result.Page = utils.NewPage(input.Page, perPage, total)

	if result.Posts, err = s.posts.List(filter, result.Page); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if result.Categories, err = s.categories.List(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if result.TotalPosts, err = s.posts.Count(repository.PostFilter{}); err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	return result, nil
}

// GetPost returns a post without relations.
func (s *BlogService) GetPost(id uint64) (*models.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

type PostDetail struct {
	Post         *models.Post
	Prev         *models.Post
	Next         *models.Post
	LikeCount    int64
	Liked        bool
	CommentLikes map[uint64]int64
	ReplyLikes   map[uint64]int64
}

// GetPostDetail loads a post with its comments, replies, neighbours and like counts.
// viewerID may be 0 for anonymous visitors.
func (s *BlogService) GetPostDetail(id, viewerID uint64) (*PostDetail, error) {
	post, err := s.posts.FindByID(id, "Author", "Category", "Tags", "Comments.Author", "Comments.Replies.Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	detail := &PostDetail{
		Post:         post,
		CommentLikes: make(map[uint64]int64, len(post.Comments)),
		ReplyLikes:   make(map[uint64]int64),
	}

	if detail.Prev, detail.Next, err = s.posts.Adjacent(post); err != nil {
		return nil, fmt.Errorf("failed to find adjacent posts: %w", err)
	}
	if detail.LikeCount, err = s.likes.Count(repository.PostLikes, post.ID); err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	if viewerID != 0 {
		if detail.Liked, err = s.likes.Likes(repository.PostLikes, post.ID, viewerID); err != nil {
			return nil, fmt.Errorf("failed to check like: %w", err)
		}
	}

	for _, comment := range post.Comments {
		if detail.CommentLikes[comment.ID], err = s.likes.Count(repository.CommentLikes, comment.ID); err != nil {
			return nil, fmt.Errorf("failed to count comment likes: %w", err)
		}
		for _, reply := range comment.Replies {
			if detail.ReplyLikes[reply.ID], err = s.likes.Count(repository.ReplyLikes, reply.ID); err != nil {
				return nil, fmt.Errorf("failed to count reply likes: %w", err)
			}
		}
	}

	return detail, nil
}

// PostInput carries the editable fields of a post. Thumbnail is optional.
type PostInput struct {
	Title      string
	Content    string
	CategoryID uint64
	TagIDs     []uint64
	Thumbnail  *storage.File
}

func (s *BlogService) validatePost(input *PostInput) error {
	input.Title = strings.TrimSpace(input.Title)
	verr := &ValidationError{}

	checkTitle(input.Title, verr)
	if strings.TrimSpace(input.Content) == "" {
		verr.Add("content", "필수 항목입니다.")
	}

	if input.CategoryID == 0 {
		verr.Add("category", "필수 항목입니다.")
	} else if _, err := s.categories.FindByID(input.CategoryID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to find category: %w", err)
		}
		verr.Add("category", "올바르게 선택해 주세요. 선택하신 것이 선택가능항목이 아닙니다.")
	}

	input.TagIDs = uniqueUint64(input.TagIDs)
	if len(input.TagIDs) > 0 {
		count, err := s.categories.CountTags(input.TagIDs)
		if err != nil {
			return fmt.Errorf("failed to verify tags: %w", err)
		}
		if int(count) != len(input.TagIDs) {
			verr.Add("tags", "올바르게 선택해 주세요. 선택하신 것이 선택가능항목이 아닙니다.")
		}
	}

	return verr.Err()
}

func checkTitle(title string, verr *ValidationError) {
	if title == "" {
		verr.Add("title", "필수 항목입니다.")
	} else if utf8.RuneCountInString(title) > 100 {
		verr.Add("title", "100자 이하로 입력해 주세요.")
	}
}

func (s *BlogService) uploadThumbnail(ctx context.Context, post *models.Post, file *storage.File) error {
	if file == nil {
		return nil
	}
	if !storage.IsImageName(file.Name) {
		return FieldError("thumbnail", MsgInvalidImage)
	}
	format, reader, err := storage.CheckImage(file.Reader)
	if err != nil {
		return FieldError("thumbnail", MsgInvalidImage)
	}

	key := storage.UploadKey("blog", "post", s.now(), file.Name)
	result, err := s.uploader.Upload(ctx, key, "image/"+format, reader)
	if err != nil {
		return fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	if post.ThumbnailKey != "" {
		if err := s.uploader.Delete(ctx, post.ThumbnailKey); err != nil {
			s.logger.Warn("failed to delete previous thumbnail", zap.String("key", post.ThumbnailKey), zap.Error(err))
		}
	}
	post.ThumbnailKey = result.Key
	post.ThumbnailURL = result.Location
	return nil
}

// CreatePost publishes a new post authored by authorID.
func (s *BlogService) CreatePost(ctx context.Context, authorID uint64, input PostInput) (*models.Post, error) {
	if err := s.validatePost(&input); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:   authorID,
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
	}
	if err := s.uploadThumbnail(ctx, post, input.Thumbnail); err != nil {
		return nil, err
	}

	if err := s.posts.Create(post, input.TagIDs); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost edits post on behalf of actorID.
func (s *BlogService) UpdatePost(ctx context.Context, actorID uint64, post *models.Post, input PostInput) error {
	if err := ensureOwner(actorID, post); err != nil {
		return err
	}
	if err := s.validatePost(&input); err != nil {
		return err
	}

	post.Title = input.Title
	post.Content = input.Content
	post.CategoryID = input.CategoryID
	if err := s.uploadThumbnail(ctx, post, input.Thumbnail); err != nil {
		return err
	}

	if err := s.posts.Update(post, input.TagIDs); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// DeletePost removes post with its comments, replies and likes.
func (s *BlogService) DeletePost(ctx context.Context, actorID uint64, post *models.Post) error {
	if err := ensureOwner(actorID, post); err != nil {
		return err
	}
	if err := s.posts.Delete(post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if post.ThumbnailKey != "" {
		if err := s.uploader.Delete(ctx, post.ThumbnailKey); err != nil {
			s.logger.Warn("failed to delete thumbnail", zap.String("key", post.ThumbnailKey), zap.Error(err))
		}
	}
	return nil
}

// TogglePostLike flips the like of userID on postID.
func (s *BlogService) TogglePostLike(postID, userID uint64) (bool, error) {
	return s.toggle(repository.PostLikes, postID, userID)
}

func (s *BlogService) ToggleCommentLike(commentID, userID uint64) (bool, error) {
	return s.toggle(repository.CommentLikes, commentID, userID)
}

func (s *BlogService) ToggleReplyLike(replyID, userID uint64) (bool, error) {
	return s.toggle(repository.ReplyLikes, replyID, userID)
}

func (s *BlogService) toggle(target repository.LikeTarget, objectID, userID uint64) (bool, error) {
	liked, err := s.likes.Toggle(target, objectID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle %s: %w", target.Table, err)
	}
	return liked, nil
}

func checkContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return FieldError("content", "필수 항목입니다.")
	}
	return nil
}

// GetComment returns a comment without relations.
func (s *BlogService) GetComment(id uint64) (*models.Comment, error) {
	comment, err := s.comments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}

func (s *BlogService) CreateComment(post *models.Post, authorID uint64, content string) (*models.Comment, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		AuthorID: authorID,
		PostID:   post.ID,
		Content:  content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// UpdateComment rewrites the content and stamps updated_at.
func (s *BlogService) UpdateComment(actorID uint64, comment *models.Comment, content string) error {
	if err := ensureOwner(actorID, comment); err != nil {
		return err
	}
	if err := checkContent(content); err != nil {
		return err
	}
	comment.Content = content
	comment.UpdatedAt = s.now()
	if err := s.comments.Update(comment); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (s *BlogService) DeleteComment(actorID uint64, comment *models.Comment) error {
	if err := ensureOwner(actorID, comment); err != nil {
		return err
	}
	if err := s.comments.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// GetReply returns a reply with its comment loaded so callers can reach the post.
func (s *BlogService) GetReply(id uint64) (*models.Reply, error) {
	reply, err := s.replies.FindByID(id, "Comment")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplyNotFound
		}
		return nil, fmt.Errorf("failed to find reply: %w", err)
	}
	return reply, nil
}

func (s *BlogService) CreateReply(comment *models.Comment, authorID uint64, content string) (*models.Reply, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}
	reply := &models.Reply{
		AuthorID:  authorID,
		CommentID: comment.ID,
		Content:   content,
	}
	if err := s.replies.Create(reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}
	return reply, nil
}

func (s *BlogService) UpdateReply(actorID uint64, reply *models.Reply, content string) error {
	if err := ensureOwner(actorID, reply); err != nil {
		return err
	}
	if err := checkContent(content); err != nil {
		return err
	}
	reply.Content = content
	reply.UpdatedAt = s.now()
	if err := s.replies.Update(reply); err != nil {
		return fmt.Errorf("failed to update reply: %w", err)
	}
	return nil
}

func (s *BlogService) DeleteReply(actorID uint64, reply *models.Reply) error {
	if err := ensureOwner(actorID, reply); err != nil {
		return err
	}
	if err := s.replies.Delete(reply.ID); err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	return nil
}

type CommentPage struct {
	Comments []models.Comment
	Page     utils.Page
}

// ListCommentsByAuthor pages through the comments written by authorID.
func (s *BlogService) ListCommentsByAuthor(authorID uint64, pageNumber int) (*CommentPage, error) {
	total, err := s.comments.CountByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	page := utils.NewPage(pageNumber, constants.ProfilePageSize, total)
	comments, err := s.comments.ListByAuthor(authorID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return &CommentPage{Comments: comments, Page: page}, nil
}

type ReplyPage struct {
	Replies []models.Reply
	Page    utils.Page
}

// ListRepliesByAuthor pages through the replies written by authorID.
func (s *BlogService) ListRepliesByAuthor(authorID uint64, pageNumber int) (*ReplyPage, error) {
	total, err := s.replies.CountByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count replies: %w", err)
	}
	page := utils.NewPage(pageNumber, constants.ProfilePageSize, total)
	replies, err := s.replies.ListByAuthor(authorID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return &ReplyPage{Replies: replies, Page: page}, nil
}

func (s *BlogService) ListCategories() ([]models.Category, error) {
	return s.categories.List()
}

func (s *BlogService) ListTags() ([]models.Tag, error) {
	return s.categories.ListTags()
}

// CreateCategory adds a category. An empty slug is stored as NULL.
func (s *BlogService) CreateCategory(name, slug string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, FieldError("category_name", "필수 항목입니다.")
	}
	if utf8.RuneCountInString(name) > 120 {
		return nil, FieldError("category_name", "120자 이하로 입력해 주세요.")
	}

	if _, err := s.categories.FindByName(name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	category := &models.Category{Name: name}
	if slug = strings.TrimSpace(slug); slug != "" {
		category.Slug = &slug
	}
	if err := s.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
