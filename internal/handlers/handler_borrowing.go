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

// borrowingHandler handles HTTP requests related to borrowings.
type borrowingHandler struct {
	borrowingService portssvc.BorrowingSvcFacade
}

// newBorrowingHandler creates a new borrowingHandler.
func newBorrowingHandler(bs portssvc.BorrowingSvcFacade) *borrowingHandler {
	return &borrowingHandler{
		borrowingService: bs,
	}
}

// RegisterBorrowingRoutes registers routes related to borrowings.
func RegisterBorrowingRoutes(rg *gin.RouterGroup, borrowingService portssvc.BorrowingSvcFacade) {
	h := newBorrowingHandler(borrowingService)

	borrowings := rg.Group("/borrowings")
	{
		borrowings.POST("", h.createBorrowing)
		borrowings.GET("", h.listBorrowings)
		borrowings.GET("/:id", h.getBorrowingByID)
		borrowings.POST("/:id/return", h.returnBorrowing)
	}
}

// borrowingIDParam parses the :id path parameter.
func borrowingIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid borrowing ID"})
		return 0, false
	}
	return id, true
}

// createBorrowing godoc
// @Summary Borrow a book
// @Description Creates a borrowing for the authenticated user, decrementing the book's inventory.
// @Tags borrowings
// @Accept  json
// @Produce  json
// @Param   borrowing body dto.CreateBorrowingRequest true "Borrowing details"
// @Success 201 {object} dto.BorrowingCreatedResponse
// @Failure 400 {object} ErrorResponse "Invalid input, unavailable book or bad dates"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create borrowing"
// @Security BearerAuth
// @Router /borrowings [post]
func (h *borrowingHandler) createBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBorrowing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.borrowingService.CreateBorrowing(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrBookUnavailable):
			logger.Warn("Attempted to borrow unavailable book", slog.Int64("book_id", req.BookID))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "The book is not available."})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating borrowing", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "The book is not available."})
		default:
			logger.Error("Failed to create borrowing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create borrowing"})
		}
		return
	}

	logger.Info("Borrowing created successfully",
		slog.Int64("borrowing_id", created.BorrowingID),
		slog.Int64("book_id", created.BookID))
	c.JSON(http.StatusCreated, dto.ToBorrowingCreatedResponse(created))
}

// listBorrowings godoc
// @Summary List borrowings
// @Description Lists the caller's borrowings. Admins see all borrowings and may filter by user_id. is_active=1 keeps only open borrowings, is_active=0 only returned ones.
// @Tags borrowings
// @Produce  json
// @Param   is_active query string false "Filter by active state (1 or 0)"
// @Param   user_id query int false "Filter by user (admin only)"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.BorrowingListItemResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list borrowings"
// @Security BearerAuth
// @Router /borrowings [get]
func (h *borrowingHandler) listBorrowings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	isAdmin := middleware.GetIsAdminFromContext(c)

	var params dto.ListBorrowingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	borrowings, err := h.borrowingService.ListBorrowings(c.Request.Context(), userID, isAdmin, params)
	if err != nil {
		logger.Error("Failed to list borrowings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list borrowings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBorrowingListResponse(borrowings))
}

// getBorrowingByID godoc
// @Summary Get a borrowing by ID
// @Description Retrieves a borrowing with its full book details. Non-admins can only access their own borrowings.
// @Tags borrowings
// @Produce  json
// @Param   id path int true "Borrowing ID"
// @Success 200 {object} dto.BorrowingDetailResponse
// @Failure 400 {object} ErrorResponse "Invalid borrowing ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Borrowing not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve borrowing"
// @Security BearerAuth
// @Router /borrowings/{id} [get]
func (h *borrowingHandler) getBorrowingByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	isAdmin := middleware.GetIsAdminFromContext(c)

	borrowingID, ok := borrowingIDParam(c)
	if !ok {
		return
	}

	borrowing, err := h.borrowingService.GetBorrowingByID(c.Request.Context(), userID, isAdmin, borrowingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Borrowing not found"})
			return
		}
		logger.Error("Failed to get borrowing from service", slog.Int64("borrowing_id", borrowingID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve borrowing"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBorrowingDetailResponse(borrowing))
}

// returnBorrowing godoc
// @Summary Return a borrowed book
// @Description Marks the borrowing as returned and increments the book's inventory. Returning twice fails.
// @Tags borrowings
// @Produce  json
// @Param   id path int true "Borrowing ID"
// @Success 200 {object} dto.DetailResponse
// @Failure 400 {object} dto.DetailResponse "This book has already been returned."
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Borrowing not found"
// @Failure 500 {object} ErrorResponse "Failed to return borrowing"
// @Security BearerAuth
// @Router /borrowings/{id}/return [post]
func (h *borrowingHandler) returnBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	isAdmin := middleware.GetIsAdminFromContext(c)

	borrowingID, ok := borrowingIDParam(c)
	if !ok {
		return
	}

	err := h.borrowingService.ReturnBorrowing(c.Request.Context(), userID, isAdmin, borrowingID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyReturned):
			c.JSON(http.StatusBadRequest, dto.DetailResponse{Detail: "This book has already been returned."})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Borrowing not found"})
		default:
			logger.Error("Failed to return borrowing in service", slog.Int64("borrowing_id", borrowingID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to return borrowing"})
		}
		return
	}

	logger.Info("Borrowing returned successfully", slog.Int64("borrowing_id", borrowingID))
	c.JSON(http.StatusOK, dto.DetailResponse{Detail: "Book successfully returned."})
}
