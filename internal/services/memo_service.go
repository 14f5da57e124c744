package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/repository"
	"github.com/yukikurage/homebase/internal/utils"
	"gorm.io/gorm"
)

// MemoService handles the staff memo board.
type MemoService struct {
	memos repository.MemoRepository
	likes repository.LikeRepository
}

// NewMemoService creates a new MemoService
func NewMemoService(memos repository.MemoRepository, likes repository.LikeRepository) *MemoService {
	return &MemoService{memos: memos, likes: likes}
}

type MemoPage struct {
	Memos         []models.Memo
	Page          utils.Page
	OngoingCount  int64
	FinishedCount int64
	LikeCounts    map[uint64]int64
}

// List returns one page of memos, newest first. A nil status lists both states.
func (s *MemoService) List(status *bool, pageNumber int) (*MemoPage, error) {
	filter := repository.MemoFilter{Status: status}
	total, err := s.memos.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count memos: %w", err)
	}

	result := &MemoPage{
		Page:       utils.NewPage(pageNumber, constants.MemoPageSize, total),
		LikeCounts: make(map[uint64]int64),
	}
	if result.Memos, err = s.memos.List(filter, result.Page); err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}

	ongoing, finished := true, false
	if result.OngoingCount, err = s.memos.Count(repository.MemoFilter{Status: &ongoing}); err != nil {
		return nil, fmt.Errorf("failed to count memos: %w", err)
	}
	if result.FinishedCount, err = s.memos.Count(repository.MemoFilter{Status: &finished}); err != nil {
		return nil, fmt.Errorf("failed to count memos: %w", err)
	}

	for _, memo := range result.Memos {
		if result.LikeCounts[memo.ID], err = s.likes.Count(repository.MemoLikes, memo.ID); err != nil {
			return nil, fmt.Errorf("failed to count memo likes: %w", err)
		}
	}
	return result, nil
}

func (s *MemoService) Get(id uint64) (*models.Memo, error) {
	memo, err := s.memos.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, fmt.Errorf("failed to find memo: %w", err)
	}
	return memo, nil
}

// MemoInput carries the editable fields of a memo. A nil Status means
// on-going for new memos and unchanged for edits.
type MemoInput struct {
	Title   string
	Content string
	Status  *bool
	DueDate *time.Time
}

func validateMemo(input *MemoInput) error {
	input.Title = strings.TrimSpace(input.Title)
	verr := &ValidationError{}
	checkTitle(input.Title, verr)
	if strings.TrimSpace(input.Content) == "" {
		verr.Add("content", "필수 항목입니다.")
	}
	return verr.Err()
}

func (s *MemoService) Create(authorID uint64, input MemoInput) (*models.Memo, error) {
	if err := validateMemo(&input); err != nil {
		return nil, err
	}

	memo := &models.Memo{
		AuthorID: authorID,
		Title:    input.Title,
		Content:  input.Content,
		Status:   true,
		DueDate:  input.DueDate,
	}
	if input.Status != nil {
		memo.Status = *input.Status
	}

	if err := s.memos.Create(memo); err != nil {
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}
	return memo, nil
}

func (s *MemoService) Update(actorID uint64, memo *models.Memo, input MemoInput) error {
	if err := ensureOwner(actorID, memo); err != nil {
		return err
	}
	if err := validateMemo(&input); err != nil {
		return err
	}

	memo.Title = input.Title
	memo.Content = input.Content
	memo.DueDate = input.DueDate
	if input.Status != nil {
		memo.Status = *input.Status
	}

	if err := s.memos.Update(memo); err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}
	return nil
}

func (s *MemoService) Delete(actorID uint64, memo *models.Memo) error {
	if err := ensureOwner(actorID, memo); err != nil {
		return err
	}
	if err := s.memos.Delete(memo.ID); err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}
	return nil
}

// ChangeStatus flips a memo between on-going and finished.
func (s *MemoService) ChangeStatus(actorID uint64, memo *models.Memo) error {
	if err := ensureOwner(actorID, memo); err != nil {
		return err
	}
	memo.Status = !memo.Status
	if err := s.memos.Update(memo); err != nil {
		return fmt.Errorf("failed to change memo status: %w", err)
	}
	return nil
}

func (s *MemoService) ToggleLike(memoID, userID uint64) (bool, error) {
	liked, err := s.likes.Toggle(repository.MemoLikes, memoID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle memo like: %w", err)
	}
	return liked, nil
}
