package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
	"github.com/pageturn/library_backend/internal/core/services"
	"github.com/pageturn/library_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BorrowingRepository ---
type MockBorrowingRepository struct {
	mock.Mock
}

func (m *MockBorrowingRepository) FindBorrowingByID(ctx context.Context, borrowingID int64) (*domain.Borrowing, error) {
	args := m.Called(ctx, borrowingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingRepository) ListBorrowings(ctx context.Context, filter portsrepo.ListBorrowingsFilter) ([]domain.Borrowing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingRepository) SaveBorrowing(ctx context.Context, borrowing domain.Borrowing) (*domain.Borrowing, error) {
	args := m.Called(ctx, borrowing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}

func (m *MockBorrowingRepository) MarkBorrowingReturned(ctx context.Context, borrowingID int64, returnDate time.Time) error {
	args := m.Called(ctx, borrowingID, returnDate)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portsrepo.BorrowingRepositoryFacade = (*MockBorrowingRepository)(nil)

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, text string) {
	m.Called(ctx, text)
}

var _ portssvc.NotifierSvc = (*MockNotifier)(nil)

// --- Test Suite ---
type BorrowingServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockBorrowingRepository
	mockNotifier *MockNotifier
	service      portssvc.BorrowingSvcFacade
}

func (suite *BorrowingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBorrowingRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewBorrowingService(suite.mockRepo, suite.mockNotifier)
}

func futureDate(days int) dto.Date {
	return dto.NewDate(domain.Today().AddDate(0, 0, days))
}

// --- Test Cases ---

func (suite *BorrowingServiceTestSuite) TestCreateBorrowing_Success() {
	ctx := context.Background()
	userID := int64(7)
	req := dto.CreateBorrowingRequest{
		ExpectedReturnDate: futureDate(14),
		BookID:             3,
	}

	saved := &domain.Borrowing{
		BorrowingID:        1,
		BorrowDate:         domain.Today(),
		ExpectedReturnDate: req.ExpectedReturnDate.Time,
		BookID:             req.BookID,
		UserID:             userID,
	}

	suite.mockRepo.On("SaveBorrowing", ctx, mock.MatchedBy(func(b domain.Borrowing) bool {
		return b.BookID == req.BookID &&
			b.UserID == userID &&
			b.BorrowDate.Equal(domain.Today()) &&
			b.ActualReturnDate == nil
	})).Return(saved, nil).Once()

	suite.mockNotifier.On("Notify", ctx, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "A new borrowing has been created on "+domain.FormatDate(saved.BorrowDate)) &&
			strings.Contains(text, "Expected return date is "+domain.FormatDate(saved.ExpectedReturnDate))
	})).Return().Once()

	created, err := suite.service.CreateBorrowing(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(1), created.BorrowingID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestCreateBorrowing_ExpectedReturnNotAfterToday() {
	ctx := context.Background()
	req := dto.CreateBorrowingRequest{
		ExpectedReturnDate: dto.NewDate(domain.Today()),
		BookID:             3,
	}

	created, err := suite.service.CreateBorrowing(ctx, 7, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Borrow date should be earlier than expected return date.")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBorrowing", mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestCreateBorrowing_BookUnavailable() {
	ctx := context.Background()
	req := dto.CreateBorrowingRequest{
		ExpectedReturnDate: futureDate(7),
		BookID:             3,
	}

	suite.mockRepo.On("SaveBorrowing", ctx, mock.AnythingOfType("domain.Borrowing")).
		Return(nil, apperrors.ErrBookUnavailable).Once()

	created, err := suite.service.CreateBorrowing(ctx, 7, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrBookUnavailable)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestGetBorrowingByID_OwnerAccess() {
	ctx := context.Background()
	expected := &domain.Borrowing{BorrowingID: 5, UserID: 7}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(expected, nil).Once()

	borrowing, err := suite.service.GetBorrowingByID(ctx, 7, false, 5)

	suite.Require().NoError(err)
	suite.Equal(expected, borrowing)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestGetBorrowingByID_CrossUserHiddenFromNonAdmin() {
	ctx := context.Background()
	other := &domain.Borrowing{BorrowingID: 5, UserID: 42}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(other, nil).Once()

	borrowing, err := suite.service.GetBorrowingByID(ctx, 7, false, 5)

	suite.Require().Error(err)
	suite.Nil(borrowing)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BorrowingServiceTestSuite) TestGetBorrowingByID_AdminSeesAny() {
	ctx := context.Background()
	other := &domain.Borrowing{BorrowingID: 5, UserID: 42}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(other, nil).Once()

	borrowing, err := suite.service.GetBorrowingByID(ctx, 7, true, 5)

	suite.Require().NoError(err)
	suite.Equal(other, borrowing)
}

func (suite *BorrowingServiceTestSuite) TestReturnBorrowing_Success() {
	ctx := context.Background()
	active := &domain.Borrowing{BorrowingID: 5, UserID: 7, BookID: 3}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(active, nil).Once()
	suite.mockRepo.On("MarkBorrowingReturned", ctx, int64(5), domain.Today()).Return(nil).Once()

	err := suite.service.ReturnBorrowing(ctx, 7, false, 5)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestReturnBorrowing_AlreadyReturned() {
	ctx := context.Background()
	returnedAt := domain.Today()
	returned := &domain.Borrowing{BorrowingID: 5, UserID: 7, ActualReturnDate: &returnedAt}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(returned, nil).Once()

	err := suite.service.ReturnBorrowing(ctx, 7, false, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReturned)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkBorrowingReturned", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestReturnBorrowing_CrossUserHiddenFromNonAdmin() {
	ctx := context.Background()
	other := &domain.Borrowing{BorrowingID: 5, UserID: 42}

	suite.mockRepo.On("FindBorrowingByID", ctx, int64(5)).Return(other, nil).Once()

	err := suite.service.ReturnBorrowing(ctx, 7, false, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkBorrowingReturned", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BorrowingServiceTestSuite) TestListBorrowings_NonAdminAlwaysScopedToSelf() {
	ctx := context.Background()
	otherUser := int64(42)
	params := dto.ListBorrowingsParams{UserID: &otherUser, Limit: 20}

	suite.mockRepo.On("ListBorrowings", ctx, mock.MatchedBy(func(f portsrepo.ListBorrowingsFilter) bool {
		return f.UserID != nil && *f.UserID == int64(7) && f.IsActive == nil
	})).Return([]domain.Borrowing{}, nil).Once()

	_, err := suite.service.ListBorrowings(ctx, 7, false, params)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestListBorrowings_AdminUserIDFilterHonored() {
	ctx := context.Background()
	otherUser := int64(42)
	params := dto.ListBorrowingsParams{UserID: &otherUser, Limit: 20}

	suite.mockRepo.On("ListBorrowings", ctx, mock.MatchedBy(func(f portsrepo.ListBorrowingsFilter) bool {
		return f.UserID != nil && *f.UserID == otherUser
	})).Return([]domain.Borrowing{}, nil).Once()

	_, err := suite.service.ListBorrowings(ctx, 7, true, params)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BorrowingServiceTestSuite) TestListBorrowings_IsActiveFilter() {
	ctx := context.Background()

	testCases := []struct {
		value      string
		wantFilter *bool
	}{
		{"1", boolPtr(true)},
		{"0", boolPtr(false)},
		{"yes", nil},
		{"true", nil},
	}

	for _, tc := range testCases {
		value := tc.value
		params := dto.ListBorrowingsParams{IsActive: &value, Limit: 20}

		suite.mockRepo.On("ListBorrowings", ctx, mock.MatchedBy(func(f portsrepo.ListBorrowingsFilter) bool {
			if tc.wantFilter == nil {
				return f.IsActive == nil
			}
			return f.IsActive != nil && *f.IsActive == *tc.wantFilter
		})).Return([]domain.Borrowing{}, nil).Once()

		_, err := suite.service.ListBorrowings(ctx, 7, true, params)
		suite.Require().NoError(err, "is_active=%q", tc.value)
	}

	suite.mockRepo.AssertExpectations(suite.T())
}

func boolPtr(b bool) *bool {
	return &b
}

func TestBorrowingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BorrowingServiceTestSuite))
}

// --- Borrow / return cycle against an in-memory repository ---

// fakeBorrowingRepo tracks per-book inventory the way the database
// transactions do, so the full borrow/return cycle can be exercised.
type fakeBorrowingRepo struct {
	inventory  map[int64]int
	borrowings map[int64]*domain.Borrowing
	nextID     int64
}

func newFakeBorrowingRepo(inventory map[int64]int) *fakeBorrowingRepo {
	return &fakeBorrowingRepo{
		inventory:  inventory,
		borrowings: make(map[int64]*domain.Borrowing),
		nextID:     1,
	}
}

func (f *fakeBorrowingRepo) FindBorrowingByID(ctx context.Context, borrowingID int64) (*domain.Borrowing, error) {
	b, ok := f.borrowings[borrowingID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBorrowingRepo) ListBorrowings(ctx context.Context, filter portsrepo.ListBorrowingsFilter) ([]domain.Borrowing, error) {
	var result []domain.Borrowing
	for _, b := range f.borrowings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.IsActive != nil && b.IsActive() != *filter.IsActive {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (f *fakeBorrowingRepo) SaveBorrowing(ctx context.Context, borrowing domain.Borrowing) (*domain.Borrowing, error) {
	inv, ok := f.inventory[borrowing.BookID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if inv < 1 {
		return nil, apperrors.ErrBookUnavailable
	}
	f.inventory[borrowing.BookID] = inv - 1

	borrowing.BorrowingID = f.nextID
	f.nextID++
	f.borrowings[borrowing.BorrowingID] = &borrowing

	copied := borrowing
	return &copied, nil
}

func (f *fakeBorrowingRepo) MarkBorrowingReturned(ctx context.Context, borrowingID int64, returnDate time.Time) error {
	b, ok := f.borrowings[borrowingID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if b.ActualReturnDate != nil {
		return apperrors.ErrAlreadyReturned
	}
	b.ActualReturnDate = &returnDate
	f.inventory[b.BookID]++
	return nil
}

var _ portsrepo.BorrowingRepositoryFacade = (*fakeBorrowingRepo)(nil)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(ctx context.Context, text string) {
	r.messages = append(r.messages, text)
}

func TestBorrowReturnCycle_LastCopy(t *testing.T) {
	ctx := context.Background()
	bookID := int64(3)
	repo := newFakeBorrowingRepo(map[int64]int{bookID: 1})
	notifier := &recordingNotifier{}
	svc := services.NewBorrowingService(repo, notifier)

	req := dto.CreateBorrowingRequest{
		ExpectedReturnDate: futureDate(7),
		BookID:             bookID,
	}

	// User A takes the last copy.
	first, err := svc.CreateBorrowing(ctx, 1, req)
	assert.NoError(t, err)
	assert.Equal(t, 0, repo.inventory[bookID])

	// User B cannot borrow while the copy is out.
	_, err = svc.CreateBorrowing(ctx, 2, req)
	assert.ErrorIs(t, err, apperrors.ErrBookUnavailable)

	// A returns, restoring the copy.
	err = svc.ReturnBorrowing(ctx, 1, false, first.BorrowingID)
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.inventory[bookID])

	// Returning again must not double-increment inventory.
	err = svc.ReturnBorrowing(ctx, 1, false, first.BorrowingID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReturned)
	assert.Equal(t, 1, repo.inventory[bookID])

	// Now B can borrow.
	_, err = svc.CreateBorrowing(ctx, 2, req)
	assert.NoError(t, err)
	assert.Equal(t, 0, repo.inventory[bookID])

	// One notification per created borrowing, none for returns.
	assert.Len(t, notifier.messages, 2)
}
