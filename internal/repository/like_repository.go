package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// LikeTarget names the join table holding the like-set of one model.
type LikeTarget struct {
	Table  string
	Column string
}

var (
	PostLikes    = LikeTarget{Table: "post_likes", Column: "post_id"}
	CommentLikes = LikeTarget{Table: "comment_likes", Column: "comment_id"}
	ReplyLikes   = LikeTarget{Table: "reply_likes", Column: "reply_id"}
	MemoLikes    = LikeTarget{Table: "memo_likes", Column: "memo_id"}
)

// GormLikeRepository is a GORM implementation of LikeRepository
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &GormLikeRepository{db: db}
}

func (r *GormLikeRepository) Likes(target LikeTarget, objectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Table(target.Table).
		Where(target.Column+" = ? AND user_id = ?", objectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormLikeRepository) Count(target LikeTarget, objectID uint64) (int64, error) {
	var count int64
	err := r.db.Table(target.Table).Where(target.Column+" = ?", objectID).Count(&count).Error
	return count, err
}

// Toggle flips membership of userID in the like-set. Concurrent toggles
// are not coordinated.
func (r *GormLikeRepository) Toggle(target LikeTarget, objectID, userID uint64) (bool, error) {
	liked, err := r.Likes(target, objectID, userID)
	if err != nil {
		return false, err
	}

	if liked {
		sql := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND user_id = ?", target.Table, target.Column)
		return false, r.db.Exec(sql, objectID, userID).Error
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s, user_id) VALUES (?, ?)", target.Table, target.Column)
	return true, r.db.Exec(sql, objectID, userID).Error
}
