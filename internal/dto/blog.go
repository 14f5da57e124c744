package dto

import (
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
	"github.com/yukikurage/homebase/internal/utils"
)

type CategoryDTO struct {
	ID   uint64  `json:"id"`
	Name string  `json:"category_name"`
	Slug *string `json:"category_slug"`
}

type TagDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"tag_name"`
}

// PostListItemDTO represents a post in list responses
type PostListItemDTO struct {
	ID           uint64       `json:"id"`
	Title        string       `json:"title"`
	ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	Author       *UserDTO     `json:"author,omitempty"`
	Category     *CategoryDTO `json:"category,omitempty"`
	Tags         []TagDTO     `json:"tags"`
	CreatedAt    time.Time    `json:"created_at"`
}

// PostLinkDTO points at a neighbouring post
type PostLinkDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

type ReplyDTO struct {
	ID        uint64    `json:"id"`
	CommentID uint64    `json:"comment_id"`
	Content   string    `json:"content"`
	Author    *UserDTO  `json:"author,omitempty"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentDTO struct {
	ID        uint64     `json:"id"`
	PostID    uint64     `json:"post_id"`
	Content   string     `json:"content"`
	Author    *UserDTO   `json:"author,omitempty"`
	LikeCount int64      `json:"like_count"`
	Replies   []ReplyDTO `json:"replies"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PostDetailDTO represents a single post with its discussion
type PostDetailDTO struct {
	PostListItemDTO
	Content   string       `json:"content"`
	UpdatedAt time.Time    `json:"updated_at"`
	LikeCount int64        `json:"like_count"`
	Liked     bool         `json:"liked"`
	Prev      *PostLinkDTO `json:"prev_post"`
	Next      *PostLinkDTO `json:"next_post"`
	Comments  []CommentDTO `json:"comments"`
}

// PostListResponse represents a paginated list of posts with the category sidebar
type PostListResponse struct {
	Posts      []PostListItemDTO        `json:"posts"`
	Category   *CategoryDTO             `json:"category,omitempty"`
	Categories []CategoryDTO            `json:"categories"`
	TotalPosts int64                    `json:"total_posts"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

type CommentListResponse struct {
	Comments   []CommentDTO             `json:"comments"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

type ReplyListResponse struct {
	Replies    []ReplyDTO               `json:"replies"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{ID: category.ID, Name: category.Name, Slug: category.Slug}
}

func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = ToCategoryDTO(c)
	}
	return dtos
}

// ToPostListItemDTO converts a post to its list representation
func ToPostListItemDTO(post models.Post) PostListItemDTO {
	dto := PostListItemDTO{
		ID:           post.ID,
		Title:        post.Title,
		ThumbnailURL: post.ThumbnailURL,
		Author:       authorDTO(post.Author),
		Tags:         make([]TagDTO, len(post.Tags)),
		CreatedAt:    post.CreatedAt,
	}
	if post.Category.ID != 0 {
		category := ToCategoryDTO(post.Category)
		dto.Category = &category
	}
	for i, tag := range post.Tags {
		dto.Tags[i] = TagDTO{ID: tag.ID, Name: tag.Name}
	}
	return dto
}

func ToPostListResponse(page *services.PostPage) PostListResponse {
	resp := PostListResponse{
		Posts:      make([]PostListItemDTO, len(page.Posts)),
		Categories: ToCategoryDTOs(page.Categories),
		TotalPosts: page.TotalPosts,
		Pagination: page.Page.Response(),
	}
	for i, post := range page.Posts {
		resp.Posts[i] = ToPostListItemDTO(post)
	}
	if page.Category != nil {
		category := ToCategoryDTO(*page.Category)
		resp.Category = &category
	}
	return resp
}

func toPostLink(post *models.Post) *PostLinkDTO {
	if post == nil {
		return nil
	}
	return &PostLinkDTO{ID: post.ID, Title: post.Title}
}

func ToReplyDTO(reply models.Reply, likes int64) ReplyDTO {
	return ReplyDTO{
		ID:        reply.ID,
		CommentID: reply.CommentID,
		Content:   reply.Content,
		Author:    authorDTO(reply.Author),
		LikeCount: likes,
		CreatedAt: reply.CreatedAt,
		UpdatedAt: reply.UpdatedAt,
	}
}

// ToCommentDTO converts a comment and its loaded replies. Like counts are
// looked up by id, missing entries count as zero.
func ToCommentDTO(comment models.Comment, commentLikes, replyLikes map[uint64]int64) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		Author:    authorDTO(comment.Author),
		LikeCount: commentLikes[comment.ID],
		Replies:   make([]ReplyDTO, len(comment.Replies)),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	for i, reply := range comment.Replies {
		dto.Replies[i] = ToReplyDTO(reply, replyLikes[reply.ID])
	}
	return dto
}

// ToPostDetailDTO converts a loaded post detail to DTO
func ToPostDetailDTO(detail *services.PostDetail) PostDetailDTO {
	post := detail.Post
	dto := PostDetailDTO{
		PostListItemDTO: ToPostListItemDTO(*post),
		Content:         post.Content,
		UpdatedAt:       post.UpdatedAt,
		LikeCount:       detail.LikeCount,
		Liked:           detail.Liked,
		Prev:            toPostLink(detail.Prev),
		Next:            toPostLink(detail.Next),
		Comments:        make([]CommentDTO, len(post.Comments)),
	}
	for i, comment := range post.Comments {
		dto.Comments[i] = ToCommentDTO(comment, detail.CommentLikes, detail.ReplyLikes)
	}
	return dto
}

func ToCommentListResponse(page *services.CommentPage) CommentListResponse {
	resp := CommentListResponse{
		Comments:   make([]CommentDTO, len(page.Comments)),
		Pagination: page.Page.Response(),
	}
	for i, comment := range page.Comments {
		resp.Comments[i] = ToCommentDTO(comment, nil, nil)
	}
	return resp
}

func ToReplyListResponse(page *services.ReplyPage) ReplyListResponse {
	resp := ReplyListResponse{
		Replies:    make([]ReplyDTO, len(page.Replies)),
		Pagination: page.Page.Response(),
	}
	for i, reply := range page.Replies {
		resp.Replies[i] = ToReplyDTO(reply, 0)
	}
	return resp
}
