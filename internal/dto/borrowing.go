package dto

import (
	"github.com/pageturn/library_backend/internal/core/domain"
)

// CreateBorrowingRequest defines the data needed to create a borrowing.
// The borrow date is always set by the server to today.
type CreateBorrowingRequest struct {
	ExpectedReturnDate Date  `json:"expected_return_date" binding:"required"`
	BookID             int64 `json:"book" binding:"required"`
}

// BorrowingCreatedResponse mirrors the creation payload: the book is referenced
// by ID only.
type BorrowingCreatedResponse struct {
	ID                 int64 `json:"id"`
	ExpectedReturnDate Date  `json:"expected_return_date"`
	BookID             int64 `json:"book"`
}

// BorrowingDetailResponse is the full projection with the nested full book.
type BorrowingDetailResponse struct {
	ID                 int64        `json:"id"`
	BorrowDate         Date         `json:"borrow_date"`
	ExpectedReturnDate Date         `json:"expected_return_date"`
	ActualReturnDate   *Date        `json:"actual_return_date"`
	Book               BookResponse `json:"book"`
}

// BorrowingListItemResponse is the list projection with the reduced book.
type BorrowingListItemResponse struct {
	ID                 int64            `json:"id"`
	BorrowDate         Date             `json:"borrow_date"`
	ExpectedReturnDate Date             `json:"expected_return_date"`
	ActualReturnDate   *Date            `json:"actual_return_date"`
	Book               BookListResponse `json:"book"`
}

// ListBorrowingsParams defines query parameters for listing borrowings.
// is_active: "1" keeps only active borrowings, "0" only returned ones, any
// other value is ignored. user_id is honored for admin callers only.
type ListBorrowingsParams struct {
	IsActive *string `form:"is_active"`
	UserID   *int64  `form:"user_id"`
	Limit    int     `form:"limit,default=20"`
	Offset   int     `form:"offset,default=0"`
}

// DetailResponse is the body of return/flow status messages,
// e.g. {"detail": "Book successfully returned."}.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ToBorrowingCreatedResponse converts a freshly created domain.Borrowing.
func ToBorrowingCreatedResponse(b *domain.Borrowing) BorrowingCreatedResponse {
	return BorrowingCreatedResponse{
		ID:                 b.BorrowingID,
		ExpectedReturnDate: NewDate(b.ExpectedReturnDate),
		BookID:             b.BookID,
	}
}

// ToBorrowingDetailResponse converts a domain.Borrowing with its book loaded.
func ToBorrowingDetailResponse(b *domain.Borrowing) BorrowingDetailResponse {
	resp := BorrowingDetailResponse{
		ID:                 b.BorrowingID,
		BorrowDate:         NewDate(b.BorrowDate),
		ExpectedReturnDate: NewDate(b.ExpectedReturnDate),
		ActualReturnDate:   NewDatePtr(b.ActualReturnDate),
	}
	if b.Book != nil {
		resp.Book = ToBookResponse(b.Book)
	}
	return resp
}

// ToBorrowingListResponse converts borrowings with their books loaded.
func ToBorrowingListResponse(borrowings []domain.Borrowing) []BorrowingListItemResponse {
	res := make([]BorrowingListItemResponse, len(borrowings))
	for i, b := range borrowings {
		item := BorrowingListItemResponse{
			ID:                 b.BorrowingID,
			BorrowDate:         NewDate(b.BorrowDate),
			ExpectedReturnDate: NewDate(b.ExpectedReturnDate),
			ActualReturnDate:   NewDatePtr(b.ActualReturnDate),
		}
		if b.Book != nil {
			item.Book = ToBookListResponse(b.Book)
		}
		res[i] = item
	}
	return res
}
