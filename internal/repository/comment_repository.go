package repository

import (
	"github.com/yukikurage/homebase/internal/database"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/utils"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit("Author", "Post", "LikeUsers", "Replies").Create(comment).Error
}

func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update writes the content and the caller supplied updated_at
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		UpdateColumns(map[string]interface{}{
			"content":    comment.Content,
			"updated_at": comment.UpdatedAt,
		}).Error
}

// Delete removes a comment with its replies and link rows
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		replies := tx.Model(&models.Reply{}).Select("id").Where("comment_id = ?", id)
		if err := tx.Exec("DELETE FROM reply_likes WHERE reply_id IN (?)", replies).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM replies WHERE comment_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM comment_likes WHERE comment_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

func (r *GormCommentRepository) CountByAuthor(authorID uint64) (int64, error) {
	var total int64
	err := r.db.Model(&models.Comment{}).Where("author_id = ?", authorID).Count(&total).Error
	return total, err
}

func (r *GormCommentRepository) ListByAuthor(authorID uint64, page utils.Page) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("author_id = ?", authorID).
		Preload("Post").
		Order("id DESC").
		Scopes(database.Paginate(page)).
		Find(&comments).Error
	return comments, err
}

// GormReplyRepository is a GORM implementation of ReplyRepository
type GormReplyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &GormReplyRepository{db: db}
}

func (r *GormReplyRepository) Create(reply *models.Reply) error {
	return r.db.Omit("Author", "Comment", "LikeUsers").Create(reply).Error
}

func (r *GormReplyRepository) FindByID(id uint64, preload ...string) (*models.Reply, error) {
	var reply models.Reply
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *GormReplyRepository) Update(reply *models.Reply) error {
	return r.db.Model(&models.Reply{}).
		Where("id = ?", reply.ID).
		UpdateColumns(map[string]interface{}{
			"content":    reply.Content,
			"updated_at": reply.UpdatedAt,
		}).Error
}

func (r *GormReplyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM reply_likes WHERE reply_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Reply{}, id).Error
	})
}

func (r *GormReplyRepository) CountByAuthor(authorID uint64) (int64, error) {
	var total int64
	err := r.db.Model(&models.Reply{}).Where("author_id = ?", authorID).Count(&total).Error
	return total, err
}

func (r *GormReplyRepository) ListByAuthor(authorID uint64, page utils.Page) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.Where("author_id = ?", authorID).
		Preload("Comment").
		Order("id DESC").
		Scopes(database.Paginate(page)).
		Find(&replies).Error
	return replies, err
}
