package service

import (
	"context"
	"time"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/repository"
)

type HistoryService interface {
	List(ctx context.Context, filter dto.HistoryFilter) (*dto.PriceHistoryListResponse, error)
}

type historyService struct {
	history repository.HistoryRepository
}

func NewHistoryService(history repository.HistoryRepository) HistoryService {
	return &historyService{history: history}
}

func (s *historyService) List(ctx context.Context, filter dto.HistoryFilter) (*dto.PriceHistoryListResponse, error) {
	rows, total, err := s.history.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.PriceHistoryItem, 0, len(rows))
	for i := range rows {
		h := &rows[i]
		item := dto.PriceHistoryItem{
			ID:           h.ID.String(),
			MaterialID:   h.MaterialID.String(),
			MaterialName: h.Material.Name,
			OldPrice:     h.OldPrice,
			NewPrice:     h.NewPrice,
			Timestamp:    h.CreatedAt.UTC().Format(time.RFC3339),
		}
		if h.ChangedBy != nil {
			actor := h.ChangedBy.String()
			item.ChangedBy = &actor
		}
		data = append(data, item)
	}

	return &dto.PriceHistoryListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
