package repository

import (
	"errors"

	"github.com/yukikurage/homebase/internal/database"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/utils"
	"gorm.io/gorm"
)

// GormPostRepository is a GORM implementation of PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a post and links its tags
func (r *GormPostRepository) Create(post *models.Post, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Category", "Tags", "LikeUsers", "Comments").Create(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post, tagIDs)
	})
}

// FindByID finds a post by ID with optional preloading
func (r *GormPostRepository) FindByID(id uint64, preload ...string) (*models.Post, error) {
	var post models.Post
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&post, id).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *GormPostRepository) filtered(filter PostFilter) *gorm.DB {
	query := r.db.Model(&models.Post{})
	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		query = query.Where("posts.author_id = ?", *filter.AuthorID)
	}
	return query
}

func (r *GormPostRepository) Count(filter PostFilter) (int64, error) {
	var total int64
	err := r.filtered(filter).Count(&total).Error
	return total, err
}

// List retrieves one page of posts, newest first
func (r *GormPostRepository) List(filter PostFilter, page utils.Page) ([]models.Post, error) {
	var posts []models.Post
	err := r.filtered(filter).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order("posts.id DESC").
		Scopes(database.Paginate(page)).
		Find(&posts).Error
	return posts, err
}

// Update updates a post and replaces its tags
func (r *GormPostRepository) Update(post *models.Post, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Category", "Tags", "LikeUsers", "Comments").Save(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post, tagIDs)
	})
}

func replaceTags(tx *gorm.DB, post *models.Post, tagIDs []uint64) error {
	if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", post.ID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec("INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)", post.ID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a post and everything hanging off it
func (r *GormPostRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		comments := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", id)
		replies := tx.Model(&models.Reply{}).Select("id").Where("comment_id IN (?)", comments)

		steps := []struct {
			sql  string
			args []interface{}
		}{
			{"DELETE FROM reply_likes WHERE reply_id IN (?)", []interface{}{replies}},
			{"DELETE FROM replies WHERE comment_id IN (?)", []interface{}{comments}},
			{"DELETE FROM comment_likes WHERE comment_id IN (?)", []interface{}{comments}},
			{"DELETE FROM comments WHERE post_id = ?", []interface{}{id}},
			{"DELETE FROM post_likes WHERE post_id = ?", []interface{}{id}},
			{"DELETE FROM post_tags WHERE post_id = ?", []interface{}{id}},
		}
		for _, step := range steps {
			if err := tx.Exec(step.sql, step.args...).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Post{}, id).Error
	})
}

// Adjacent finds the previous and next post by creation time
func (r *GormPostRepository) Adjacent(post *models.Post) (*models.Post, *models.Post, error) {
	prev, err := r.neighbour("created_at < ?", "created_at DESC, id DESC", post)
	if err != nil {
		return nil, nil, err
	}
	next, err := r.neighbour("created_at > ?", "created_at ASC, id ASC", post)
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

func (r *GormPostRepository) neighbour(cond, order string, post *models.Post) (*models.Post, error) {
	var found models.Post
	err := r.db.Where(cond, post.CreatedAt).Order(order).First(&found).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &found, nil
}
