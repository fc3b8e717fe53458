package services

import (
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.NotifierSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Book = NewBookService(repos.BookRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Borrowing = NewBorrowingService(repos.BorrowingRepo, notifier)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.BookSvcFacade      = (*bookService)(nil)
	_ portssvc.BorrowingSvcFacade = (*borrowingService)(nil)
	_ portssvc.UserSvcFacade      = (*userService)(nil)
)
