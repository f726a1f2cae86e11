package dto

import "github.com/shopspring/decimal"

// HistoryFilter narrows the audit trail listing; MaterialID empty = all.
type HistoryFilter struct {
	MaterialID string `form:"material_id" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PriceHistoryItem struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	OldPrice     decimal.Decimal `json:"old_price"`
	NewPrice     decimal.Decimal `json:"new_price"`
	ChangedBy    *string         `json:"changed_by"`
	Timestamp    string          `json:"timestamp"`
}

type PriceHistoryListResponse struct {
	Data  []PriceHistoryItem `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
