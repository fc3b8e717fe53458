package mapping

import (
	"github.com/pageturn/library_backend/internal/core/domain"
	"github.com/pageturn/library_backend/internal/models"
)

// ToModelUser converts a domain.User to its database model.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		IsAdmin:      d.IsAdmin,
		AuditFields:  toModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a database model to a domain.User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsAdmin:      m.IsAdmin,
		AuditFields:  toDomainAuditFields(m.AuditFields),
	}
}
