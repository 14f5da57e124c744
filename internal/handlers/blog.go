package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

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

type BlogHandler struct {
	blogService *services.BlogService
	logger      *zap.Logger
}

func NewBlogHandler(blogService *services.BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		logger:      logger,
	}
}

func postURL(postID uint64) string {
	return fmt.Sprintf("%s/%d", constants.BlogIndexPath, postID)
}

// Index returns one page of every post.
func (h *BlogHandler) Index(c *gin.Context) {
	h.list(c, "")
}

// Category returns one page of the posts in the named category.
func (h *BlogHandler) Category(c *gin.Context) {
	h.list(c, c.Param("name"))
}

func (h *BlogHandler) list(c *gin.Context, category string) {
	page, err := h.blogService.ListPosts(services.ListPostsInput{
		CategoryName: category,
		Page:         utils.GetPageNumber(c),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostListResponse(page))
}

// CreateCategory adds a category. Superusers only.
func (h *BlogHandler) CreateCategory(c *gin.Context) {
	var form forms.CategoryForm
	if !bindForm(c, &form) {
		return
	}

	category, err := h.blogService.CreateCategory(form.Name, form.Slug)
	if err != nil {
		if errors.Is(err, services.ErrCategoryExists) {
			apierrors.Conflict(c, "이미 존재하는 카테고리입니다.")
			return
		}
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "카테고리가 생성 되었습니다.",
		constants.BlogIndexPath+"/category/"+url.PathEscape(category.Name))
}

// Detail returns a post with its discussion and neighbours.
func (h *BlogHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	viewerID, _ := middleware.GetUserID(c)

	detail, err := h.blogService.GetPostDetail(id, viewerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostDetailDTO(detail))
}

func (h *BlogHandler) postSpec(c *gin.Context, post *models.Post) {
	categories, err := h.blogService.ListCategories()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	tags, err := h.blogService.ListTags()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, forms.PostSpec(post, categories, tags))
}

func (h *BlogHandler) NewPostForm(c *gin.Context) {
	h.postSpec(c, nil)
}

// bindPost reads the post form together with its optional thumbnail.
func (h *BlogHandler) bindPost(c *gin.Context) (services.PostInput, func(), bool) {
	var form forms.PostForm
	if !bindForm(c, &form) {
		return services.PostInput{}, nil, false
	}
	input := form.Input()

	thumbnail, closeFile, err := formFile(c, "thumbnail")
	if err != nil {
		respondBadBody(c, err)
		return services.PostInput{}, nil, false
	}
	input.Thumbnail = thumbnail
	return input, closeFile, true
}

func (h *BlogHandler) CreatePost(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	input, closeFile, ok := h.bindPost(c)
	if !ok {
		return
	}
	defer closeFile()

	post, err := h.blogService.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "새 블로그가 포스팅 되었습니다.", postURL(post.ID))
}

// loadPost resolves :id. It answers 404 itself.
func (h *BlogHandler) loadPost(c *gin.Context, preload bool) (*models.Post, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	var (
		post *models.Post
		err  error
	)
	if preload {
		var detail *services.PostDetail
		if detail, err = h.blogService.GetPostDetail(id, 0); err == nil {
			post = detail.Post
		}
	} else {
		post, err = h.blogService.GetPost(id)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return post, true
}

func (h *BlogHandler) EditPostForm(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	post, ok := h.loadPost(c, true)
	if !ok {
		return
	}
	if !services.CanMutate(userID, post) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, postURL(post.ID))
		return
	}
	h.postSpec(c, post)
}

func (h *BlogHandler) UpdatePost(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	post, ok := h.loadPost(c, false)
	if !ok {
		return
	}
	if !services.CanMutate(userID, post) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, postURL(post.ID))
		return
	}

	input, closeFile, ok := h.bindPost(c)
	if !ok {
		return
	}
	defer closeFile()

	err := h.blogService.UpdatePost(c.Request.Context(), userID, post, input)
	if !denyOrFail(c, h.logger, err, msgEditDenied, postURL(post.ID)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "블로그가 수정 되었습니다.", postURL(post.ID))
}

func (h *BlogHandler) DeletePost(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	post, ok := h.loadPost(c, false)
	if !ok {
		return
	}

	err := h.blogService.DeletePost(c.Request.Context(), userID, post)
	if !denyOrFail(c, h.logger, err, msgDeleteDenied, postURL(post.ID)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "블로그가 삭제 되었습니다.", constants.BlogIndexPath)
}

// LikePost toggles the like of the current user.
func (h *BlogHandler) LikePost(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	post, ok := h.loadPost(c, false)
	if !ok {
		return
	}
	if _, err := h.blogService.TogglePostLike(post.ID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.Redirect(c, postURL(post.ID))
}

func (h *BlogHandler) NewCommentForm(c *gin.Context) {
	c.JSON(http.StatusOK, forms.CommentSpec(nil))
}

// CreateComment adds a comment to the post at :id.
func (h *BlogHandler) CreateComment(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	post, ok := h.loadPost(c, false)
	if !ok {
		return
	}

	var form forms.ContentForm
	if !bindForm(c, &form) {
		return
	}
	if _, err := h.blogService.CreateComment(post, userID, form.Content); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "새 댓글이 작성 되었습니다.", postURL(post.ID)+"#end")
}

func (h *BlogHandler) loadComment(c *gin.Context) (*models.Comment, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	comment, err := h.blogService.GetComment(id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return comment, true
}

func (h *BlogHandler) EditCommentForm(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}
	if !services.CanMutate(userID, comment) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, postURL(comment.PostID))
		return
	}
	c.JSON(http.StatusOK, forms.CommentSpec(comment))
}

func (h *BlogHandler) UpdateComment(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}
	if !services.CanMutate(userID, comment) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, postURL(comment.PostID))
		return
	}

	var form forms.ContentForm
	if !bindForm(c, &form) {
		return
	}
	err := h.blogService.UpdateComment(userID, comment, form.Content)
	if !denyOrFail(c, h.logger, err, msgEditDenied, postURL(comment.PostID)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "댓글이 수정 되었습니다.",
		fmt.Sprintf("%s#comment%d", postURL(comment.PostID), comment.ID))
}

func (h *BlogHandler) DeleteComment(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}

	err := h.blogService.DeleteComment(userID, comment)
	if !denyOrFail(c, h.logger, err, msgDeleteDenied, postURL(comment.PostID)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "댓글이 삭제 되었습니다.", postURL(comment.PostID))
}

func (h *BlogHandler) LikeComment(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}
	if _, err := h.blogService.ToggleCommentLike(comment.ID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.Redirect(c, fmt.Sprintf("%s#comment%d", postURL(comment.PostID), comment.ID))
}

func (h *BlogHandler) NewReplyForm(c *gin.Context) {
	if _, ok := h.loadComment(c); !ok {
		return
	}
	c.JSON(http.StatusOK, forms.ReplySpec(nil))
}

// CreateReply answers the comment at :id.
func (h *BlogHandler) CreateReply(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}

	var form forms.ContentForm
	if !bindForm(c, &form) {
		return
	}
	if _, err := h.blogService.CreateReply(comment, userID, form.Content); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "새 대댓글이 작성 되었습니다.",
		fmt.Sprintf("%s#comment%d", postURL(comment.PostID), comment.ID))
}

func (h *BlogHandler) loadReply(c *gin.Context) (*models.Reply, uint64, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, 0, false
	}
	reply, err := h.blogService.GetReply(id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, 0, false
	}
	var postID uint64
	if reply.Comment != nil {
		postID = reply.Comment.PostID
	}
	return reply, postID, true
}

func (h *BlogHandler) EditReplyForm(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reply, postID, ok := h.loadReply(c)
	if !ok {
		return
	}
	if !services.CanMutate(userID, reply) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, postURL(postID))
		return
	}
	c.JSON(http.StatusOK, forms.ReplySpec(reply))
}

func (h *BlogHandler) UpdateReply(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reply, postID, ok := h.loadReply(c)
	if !ok {
		return
	}
	if !services.CanMutate(userID, reply) {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, postURL(postID))
		return
	}

	var form forms.ContentForm
	if !bindForm(c, &form) {
		return
	}
	err := h.blogService.UpdateReply(userID, reply, form.Content)
	if !denyOrFail(c, h.logger, err, msgEditDenied, postURL(postID)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "댓글이 수정 되었습니다.",
		fmt.Sprintf("%s#reply%d", postURL(postID), reply.ID))
}

func (h *BlogHandler) DeleteReply(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reply, postID, ok := h.loadReply(c)
	if !ok {
		return
	}

	err := h.blogService.DeleteReply(userID, reply)
	if !denyOrFail(c, h.logger, err, msgDeleteDenied, postURL(postID)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "댓글이 삭제 되었습니다.", postURL(postID))
}

func (h *BlogHandler) LikeReply(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	reply, postID, ok := h.loadReply(c)
	if !ok {
		return
	}
	if _, err := h.blogService.ToggleReplyLike(reply.ID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.Redirect(c, fmt.Sprintf("%s#reply%d", postURL(postID), reply.ID))
}
