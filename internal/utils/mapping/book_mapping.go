package mapping

import (
	"github.com/pageturn/library_backend/internal/core/domain"
	"github.com/pageturn/library_backend/internal/models"
)

// ToModelBook converts a domain.Book to its database model.
func ToModelBook(d domain.Book) models.Book {
	return models.Book{
		BookID:      d.BookID,
		Title:       d.Title,
		Author:      d.Author,
		Cover:       models.CoverType(d.Cover),
		Inventory:   d.Inventory,
		DailyFee:    d.DailyFee,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}

// ToDomainBook converts a database model to a domain.Book.
func ToDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:      m.BookID,
		Title:       m.Title,
		Author:      m.Author,
		Cover:       domain.CoverType(m.Cover),
		Inventory:   m.Inventory,
		DailyFee:    m.DailyFee,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBookSlice converts a slice of models.Book to domain.Book values.
func ToDomainBookSlice(ms []models.Book) []domain.Book {
	ds := make([]domain.Book, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBook(m)
	}
	return ds
}
