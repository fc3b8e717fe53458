package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pageturn/library_backend/internal/apperrors"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
	"github.com/pageturn/library_backend/internal/dto"
	"github.com/pageturn/library_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookHandler handles HTTP requests related to the book catalog.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(bs portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{
		bookService: bs,
	}
}

// registerBookRoutes registers routes related to the book catalog. Reads are
// open to any authenticated user; writes require admin.
func registerBookRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books := rg.Group("/books")
	{
		books.GET("", h.listBooks)
		books.GET("/:id", h.getBookByID)
		books.POST("", h.createBook)
		books.PUT("/:id", h.updateBook)
		books.PATCH("/:id", h.updateBook)
		books.DELETE("/:id", h.deleteBook)
	}
}

// bookIDParam parses the :id path parameter.
func bookIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid book ID"})
		return 0, false
	}
	return id, true
}

// requireAdmin rejects non-admin callers, returning false when aborted.
func requireAdmin(c *gin.Context) bool {
	if !middleware.GetIsAdminFromContext(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin privileges required"})
		return false
	}
	return true
}

// createBook godoc
// @Summary Create a new book
// @Description Adds a new book to the catalog (admin only)
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Admin privileges required"
// @Failure 500 {object} ErrorResponse "Failed to create book"
// @Security BearerAuth
// @Router /books [post]
func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if !requireAdmin(c) {
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	createdBook, err := h.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating book", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create book in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create book"})
		return
	}

	logger.Info("Book created successfully", slog.Int64("book_id", createdBook.BookID))
	c.JSON(http.StatusCreated, dto.ToBookResponse(createdBook))
}

// getBookByID godoc
// @Summary Get a book by ID
// @Description Retrieves full details for a specific book
// @Tags books
// @Produce  json
// @Param   id path int true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse "Invalid book ID"
// @Failure 404 {object} ErrorResponse "Book not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve book"
// @Security BearerAuth
// @Router /books/{id} [get]
func (h *bookHandler) getBookByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	book, err := h.bookService.GetBookByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to get book from service", slog.Int64("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve book"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// listBooks godoc
// @Summary List books
// @Description Retrieves a paginated list of books with reduced fields
// @Tags books
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.BookListResponse
// @Failure 500 {object} ErrorResponse "Failed to list books"
// @Security BearerAuth
// @Router /books [get]
func (h *bookHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	books, err := h.bookService.ListBooks(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list books from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list books"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookListResponses(books))
}

// updateBook godoc
// @Summary Update a book
// @Description Partially updates a book's fields (admin only)
// @Tags books
// @Accept  json
// @Produce  json
// @Param   id path int true "Book ID"
// @Param   book body dto.UpdateBookRequest true "Fields to update"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Admin privileges required"
// @Failure 404 {object} ErrorResponse "Book not found"
// @Failure 500 {object} ErrorResponse "Failed to update book"
// @Security BearerAuth
// @Router /books/{id} [patch]
func (h *bookHandler) updateBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if !requireAdmin(c) {
		return
	}
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updatedBook, err := h.bookService.UpdateBook(c.Request.Context(), bookID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update book in service", slog.Int64("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update book"})
		}
		return
	}

	logger.Info("Book updated successfully", slog.Int64("book_id", bookID))
	c.JSON(http.StatusOK, dto.ToBookResponse(updatedBook))
}

// deleteBook godoc
// @Summary Delete a book
// @Description Removes a book from the catalog (admin only)
// @Tags books
// @Produce  json
// @Param   id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid book ID"
// @Failure 403 {object} ErrorResponse "Admin privileges required"
// @Failure 404 {object} ErrorResponse "Book not found"
// @Failure 500 {object} ErrorResponse "Failed to delete book"
// @Security BearerAuth
// @Router /books/{id} [delete]
func (h *bookHandler) deleteBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if !requireAdmin(c) {
		return
	}
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), bookID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to delete book in service", slog.Int64("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete book"})
		return
	}

	logger.Info("Book deleted successfully", slog.Int64("book_id", bookID))
	c.Status(http.StatusNoContent)
}
