package repository

import (
	"time"

	"github.com/yukikurage/homebase/internal/database"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/utils"
	"gorm.io/gorm"
)

// GormMemoRepository is a GORM implementation of MemoRepository
type GormMemoRepository struct {
	db *gorm.DB
}

// NewMemoRepository creates a new MemoRepository
func NewMemoRepository(db *gorm.DB) MemoRepository {
	return &GormMemoRepository{db: db}
}

func (r *GormMemoRepository) Create(memo *models.Memo) error {
	return r.db.Omit("Author", "LikeUsers").Create(memo).Error
}

func (r *GormMemoRepository) FindByID(id uint64) (*models.Memo, error) {
	var memo models.Memo
	if err := r.db.Preload("Author").First(&memo, id).Error; err != nil {
		return nil, err
	}
	return &memo, nil
}

func (r *GormMemoRepository) filtered(filter MemoFilter) *gorm.DB {
	query := r.db.Model(&models.Memo{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

func (r *GormMemoRepository) Count(filter MemoFilter) (int64, error) {
	var total int64
	err := r.filtered(filter).Count(&total).Error
	return total, err
}

func (r *GormMemoRepository) List(filter MemoFilter, page utils.Page) ([]models.Memo, error) {
	var memos []models.Memo
	err := r.filtered(filter).
		Preload("Author").
		Order("id DESC").
		Scopes(database.Paginate(page)).
		Find(&memos).Error
	return memos, err
}

func (r *GormMemoRepository) Update(memo *models.Memo) error {
	return r.db.Omit("Author", "LikeUsers").Save(memo).Error
}

func (r *GormMemoRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM memo_likes WHERE memo_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Memo{}, id).Error
	})
}

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Omit("Author").Create(event).Error
}

func (r *GormEventRepository) FindByID(id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.Preload("Author").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormEventRepository) ListStartingBetween(from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Omit("Author").Save(event).Error
}

func (r *GormEventRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Event{}, id).Error
}
