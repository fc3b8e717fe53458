package domain

import (
	"github.com/shopspring/decimal"
)

// CoverType defines the physical cover of a book.
type CoverType string

const (
	CoverHard CoverType = "HARD"
	CoverSoft CoverType = "SOFT"
)

// Book represents a title in the catalog together with its available inventory.
// Inventory counts copies not currently on loan and never goes below zero.
type Book struct {
	BookID    int64           `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Cover     CoverType       `json:"cover"`
	Inventory int             `json:"inventory"`
	DailyFee  decimal.Decimal `json:"daily_fee"`
	AuditFields
}
