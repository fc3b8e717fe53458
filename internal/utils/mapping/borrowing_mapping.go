package mapping

import (
	"github.com/pageturn/library_backend/internal/core/domain"
	"github.com/pageturn/library_backend/internal/models"
)

// ToModelBorrowing converts a domain.Borrowing to its database model.
// The nested Book reference is not carried; it lives in its own table.
func ToModelBorrowing(d domain.Borrowing) models.Borrowing {
	return models.Borrowing{
		BorrowingID:        d.BorrowingID,
		BorrowDate:         d.BorrowDate,
		ExpectedReturnDate: d.ExpectedReturnDate,
		ActualReturnDate:   d.ActualReturnDate,
		BookID:             d.BookID,
		UserID:             d.UserID,
	}
}

// ToDomainBorrowing converts a database model to a domain.Borrowing.
func ToDomainBorrowing(m models.Borrowing) domain.Borrowing {
	return domain.Borrowing{
		BorrowingID:        m.BorrowingID,
		BorrowDate:         m.BorrowDate,
		ExpectedReturnDate: m.ExpectedReturnDate,
		ActualReturnDate:   m.ActualReturnDate,
		BookID:             m.BookID,
		UserID:             m.UserID,
	}
}
