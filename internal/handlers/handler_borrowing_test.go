package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
	"github.com/pageturn/library_backend/internal/dto"
	"github.com/pageturn/library_backend/internal/handlers"
	"github.com/pageturn/library_backend/internal/middleware"
	"github.com/pageturn/library_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BorrowingService ---
type MockBorrowingService struct {
	mock.Mock
}

func (m *MockBorrowingService) GetBorrowingByID(ctx context.Context, requestingUserID int64, isAdmin bool, borrowingID int64) (*domain.Borrowing, error) {
	args := m.Called(ctx, requestingUserID, isAdmin, borrowingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) ListBorrowings(ctx context.Context, requestingUserID int64, isAdmin bool, params dto.ListBorrowingsParams) ([]domain.Borrowing, error) {
	args := m.Called(ctx, requestingUserID, isAdmin, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) CreateBorrowing(ctx context.Context, requestingUserID int64, req dto.CreateBorrowingRequest) (*domain.Borrowing, error) {
	args := m.Called(ctx, requestingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) ReturnBorrowing(ctx context.Context, requestingUserID int64, isAdmin bool, borrowingID int64) error {
	args := m.Called(ctx, requestingUserID, isAdmin, borrowingID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.BorrowingSvcFacade = (*MockBorrowingService)(nil)

// --- Test Suite ---
type BorrowingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockBorrowingService
	jwtSecret   string
}

func (suite *BorrowingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockBorrowingService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBorrowingRoutes(v1, suite.mockService)
}

// generateTestToken creates a signed JWT for testing.
func (suite *BorrowingHandlerTestSuite) generateTestToken(userID int64, isAdmin bool) string {
	token, err := utils.GenerateJWT(userID, isAdmin, suite.jwtSecret, time.Hour, "library-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *BorrowingHandlerTestSuite) doRequest(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *BorrowingHandlerTestSuite) TestCreateBorrowing_Success() {
	userID := int64(7)
	expected := domain.Today().AddDate(0, 0, 14)
	created := &domain.Borrowing{
		BorrowingID:        12,
		BorrowDate:         domain.Today(),
		ExpectedReturnDate: expected,
		BookID:             3,
		UserID:             userID,
	}

	suite.mockService.On("CreateBorrowing",
		mock.Anything,
		userID,
		mock.MatchedBy(func(req dto.CreateBorrowingRequest) bool {
			return req.BookID == 3 && req.ExpectedReturnDate.Time.Equal(expected)
		}),
	).Return(created, nil).Once()

	body := map[string]any{
		"expected_return_date": domain.FormatDate(expected),
		"book":                 3,
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/borrowings", body, suite.generateTestToken(userID, false))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.BorrowingCreatedResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(12), resp.ID)
	suite.Equal(int64(3), resp.BookID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BorrowingHandlerTestSuite) TestCreateBorrowing_BookUnavailable() {
	suite.mockService.On("CreateBorrowing", mock.Anything, int64(7), mock.Anything).
		Return(nil, apperrors.ErrBookUnavailable).Once()

	body := map[string]any{
		"expected_return_date": domain.FormatDate(domain.Today().AddDate(0, 0, 7)),
		"book":                 3,
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/borrowings", body, suite.generateTestToken(7, false))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error": "The book is not available."}`, w.Body.String())
}

func (suite *BorrowingHandlerTestSuite) TestCreateBorrowing_DateValidationMessageSurfaced() {
	msg := "Borrow date should be earlier than expected return date. Borrow date is 2026-08-31, and expected return date is 2026-08-30."
	suite.mockService.On("CreateBorrowing", mock.Anything, int64(7), mock.Anything).
		Return(nil, apperrors.NewValidationError(msg)).Once()

	body := map[string]any{
		"expected_return_date": "2026-08-30",
		"book":                 3,
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/borrowings", body, suite.generateTestToken(7, false))

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(msg, resp["error"])
}

func (suite *BorrowingHandlerTestSuite) TestCreateBorrowing_Unauthenticated() {
	w := suite.doRequest(http.MethodPost, "/api/v1/borrowings", map[string]any{"book": 3}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *BorrowingHandlerTestSuite) TestGetBorrowingByID_Success() {
	userID := int64(7)
	returned := domain.Today()
	borrowing := &domain.Borrowing{
		BorrowingID:        5,
		BorrowDate:         domain.Today().AddDate(0, 0, -10),
		ExpectedReturnDate: domain.Today().AddDate(0, 0, 4),
		ActualReturnDate:   &returned,
		BookID:             3,
		UserID:             userID,
		Book: &domain.Book{
			BookID:    3,
			Title:     "The Master and Margarita",
			Author:    "Mikhail Bulgakov",
			Cover:     domain.CoverHard,
			Inventory: 4,
			DailyFee:  decimal.NewFromFloat(0.75),
		},
	}

	suite.mockService.On("GetBorrowingByID", mock.Anything, userID, false, int64(5)).
		Return(borrowing, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/borrowings/5", nil, suite.generateTestToken(userID, false))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BorrowingDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(5), resp.ID)
	suite.Equal("The Master and Margarita", resp.Book.Title)
	suite.Require().NotNil(resp.ActualReturnDate)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BorrowingHandlerTestSuite) TestGetBorrowingByID_NotFound() {
	suite.mockService.On("GetBorrowingByID", mock.Anything, int64(7), false, int64(99)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/borrowings/99", nil, suite.generateTestToken(7, false))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BorrowingHandlerTestSuite) TestListBorrowings_FiltersBound() {
	adminID := int64(1)

	suite.mockService.On("ListBorrowings",
		mock.Anything,
		adminID,
		true,
		mock.MatchedBy(func(p dto.ListBorrowingsParams) bool {
			return p.IsActive != nil && *p.IsActive == "1" &&
				p.UserID != nil && *p.UserID == int64(7) &&
				p.Limit == 5
		}),
	).Return([]domain.Borrowing{}, nil).Once()

	url := fmt.Sprintf("/api/v1/borrowings?is_active=1&user_id=%d&limit=5", 7)
	w := suite.doRequest(http.MethodGet, url, nil, suite.generateTestToken(adminID, true))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BorrowingHandlerTestSuite) TestReturnBorrowing_Success() {
	suite.mockService.On("ReturnBorrowing", mock.Anything, int64(7), false, int64(5)).
		Return(nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/borrowings/5/return", nil, suite.generateTestToken(7, false))

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"detail": "Book successfully returned."}`, w.Body.String())
}

func (suite *BorrowingHandlerTestSuite) TestReturnBorrowing_AlreadyReturned() {
	suite.mockService.On("ReturnBorrowing", mock.Anything, int64(7), false, int64(5)).
		Return(apperrors.ErrAlreadyReturned).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/borrowings/5/return", nil, suite.generateTestToken(7, false))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"detail": "This book has already been returned."}`, w.Body.String())
}

func TestBorrowingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BorrowingHandlerTestSuite))
}
