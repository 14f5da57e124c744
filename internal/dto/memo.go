package dto

import (
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
	"github.com/yukikurage/homebase/internal/utils"
)

// MemoDTO represents a memo in API responses
type MemoDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    bool      `json:"status"`
	DueDate   *string   `json:"due_date"`
	Author    *UserDTO  `json:"author,omitempty"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MemoListResponse struct {
	Memos         []MemoDTO                `json:"memos"`
	OngoingCount  int64                    `json:"ongoing_count"`
	FinishedCount int64                    `json:"finished_count"`
	Status        *bool                    `json:"status,omitempty"`
	Pagination    utils.PaginationResponse `json:"pagination"`
}

// ToMemoDTO converts a memo to DTO. The due date is a plain calendar date.
func ToMemoDTO(memo models.Memo, likes int64) MemoDTO {
	dto := MemoDTO{
		ID:        memo.ID,
		Title:     memo.Title,
		Content:   memo.Content,
		Status:    memo.Status,
		Author:    authorDTO(memo.Author),
		LikeCount: likes,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}
	if memo.DueDate != nil {
		due := memo.DueDate.Format("2006-01-02")
		dto.DueDate = &due
	}
	return dto
}

func ToMemoListResponse(page *services.MemoPage, status *bool) MemoListResponse {
	resp := MemoListResponse{
		Memos:         make([]MemoDTO, len(page.Memos)),
		OngoingCount:  page.OngoingCount,
		FinishedCount: page.FinishedCount,
		Status:        status,
		Pagination:    page.Page.Response(),
	}
	for i, memo := range page.Memos {
		resp.Memos[i] = ToMemoDTO(memo, page.LikeCounts[memo.ID])
	}
	return resp
}
