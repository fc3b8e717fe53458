package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pageturn/library_backend/internal/core/domain"
)

// CreateBookRequest defines the data needed to add a book to the catalog.
type CreateBookRequest struct {
	Title     string          `json:"title" binding:"required"`
	Author    string          `json:"author" binding:"required"`
	Cover     string          `json:"cover" binding:"required,oneof=HARD SOFT"`
	Inventory int             `json:"inventory" binding:"min=0"`
	DailyFee  decimal.Decimal `json:"daily_fee" binding:"required,nonnegativedecimal"`
}

// UpdateBookRequest defines the data allowed for updating a book.
// Pointers distinguish omitted fields from zero values.
type UpdateBookRequest struct {
	Title     *string          `json:"title"`
	Author    *string          `json:"author"`
	Cover     *string          `json:"cover" binding:"omitempty,oneof=HARD SOFT"`
	Inventory *int             `json:"inventory" binding:"omitempty,min=0"`
	DailyFee  *decimal.Decimal `json:"daily_fee" binding:"omitempty,nonnegativedecimal"`
}

// BookResponse is the full projection of a catalog entry.
type BookResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Cover     string          `json:"cover"`
	Inventory int             `json:"inventory"`
	DailyFee  decimal.Decimal `json:"daily_fee"`
}

// BookListResponse is the reduced projection used in list views.
type BookListResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ListBooksParams defines query parameters for listing books.
type ListBooksParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToBookResponse converts a domain.Book to its full response.
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:        b.BookID,
		Title:     b.Title,
		Author:    b.Author,
		Cover:     string(b.Cover),
		Inventory: b.Inventory,
		DailyFee:  b.DailyFee,
	}
}

// ToBookListResponse converts a domain.Book to its reduced response.
func ToBookListResponse(b *domain.Book) BookListResponse {
	return BookListResponse{
		ID:     b.BookID,
		Title:  b.Title,
		Author: b.Author,
	}
}

// ToBookListResponses converts a slice of domain.Book to reduced responses.
func ToBookListResponses(books []domain.Book) []BookListResponse {
	res := make([]BookListResponse, len(books))
	for i, b := range books {
		res[i] = ToBookListResponse(&b)
	}
	return res
}
