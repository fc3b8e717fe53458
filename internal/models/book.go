package models

import (
	"github.com/shopspring/decimal"
)

// CoverType mirrors domain.CoverType at the persistence layer.
type CoverType string

const (
	CoverHard CoverType = "HARD"
	CoverSoft CoverType = "SOFT"
)

// Book is the database representation of a catalog entry.
// inventory is guarded by a CHECK (inventory >= 0) constraint.
type Book struct {
	BookID    int64           `db:"book_id"`
	Title     string          `db:"title"`
	Author    string          `db:"author"`
	Cover     CoverType       `db:"cover"`
	Inventory int             `db:"inventory"`
	DailyFee  decimal.Decimal `db:"daily_fee"`
	AuditFields
}
