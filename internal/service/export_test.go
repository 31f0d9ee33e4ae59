package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"reviewapi/internal/model"
	repoMocks "reviewapi/internal/repository/mocks"
	"reviewapi/internal/storage"
	storeMocks "reviewapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type exportMocks struct {
	store       *storeMocks.MockExportStore
	restaurants *repoMocks.MockRestaurantRepository
	customers   *repoMocks.MockCustomerRepository
	reviews     *repoMocks.MockReviewRepository
}

func newExportSvc(now time.Time) (*exportService, exportMocks) {
	m := exportMocks{
		store:       new(storeMocks.MockExportStore),
		restaurants: new(repoMocks.MockRestaurantRepository),
		customers:   new(repoMocks.MockCustomerRepository),
		reviews:     new(repoMocks.MockReviewRepository),
	}
	svc := NewExportService(m.store, m.restaurants, m.customers, m.reviews, time.Minute).(*exportService)
	svc.now = func() time.Time { return now }
	return svc, m
}

func (m exportMocks) expectRestaurant(ctx context.Context) {
	m.restaurants.On("FindByID", ctx, int64(1)).Return(&model.Restaurant{ID: 1, Name: "X", Price: 2}, nil)
	m.reviews.On("ListByRestaurant", ctx, int64(1)).Return([]model.Review{
		{ID: 1, StarRating: 5, CustomerID: 1, RestaurantID: 1},
		{ID: 3, StarRating: 6, CustomerID: 2, RestaurantID: 1},
	}, nil)
	m.customers.On("ListByRestaurant", ctx, int64(1)).Return([]model.Customer{
		{ID: 1, FirstName: "A", LastName: "One"},
		{ID: 2, FirstName: "B", LastName: "Two"},
	}, nil)
}

func TestExportService_ExportRestaurantReviews(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		svc, m := newExportSvc(now)
		m.expectRestaurant(ctx)

		var uploaded model.ReviewSnapshot
		m.store.On("Save", ctx, mock.MatchedBy(func(u storage.Upload) bool {
			return strings.HasPrefix(u.Key, "exports/restaurants/1/") && strings.HasSuffix(u.Key, ".json") &&
				u.ContentType == "application/json" && u.Metadata["review-count"] == "2"
		})).Return(func(u storage.Upload) storage.Object {
			_ = json.Unmarshal(u.Body, &uploaded)
			return storage.Object{Key: u.Key, Size: int64(len(u.Body))}
		}, nil)
		m.store.On("DownloadURL", ctx, mock.Anything, time.Minute).Return("https://minio.local/signed", nil)

		exp, err := svc.ExportRestaurantReviews(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "https://minio.local/signed", exp.URL)
		assert.Equal(t, 2, exp.ReviewCount)
		assert.Equal(t, now.Add(time.Minute), exp.ExpiresAt)
		assert.Equal(t, "X", uploaded.Restaurant.Name)
		require.Len(t, uploaded.Reviews, 2)
		assert.Equal(t, "B", uploaded.Reviews[1].Customer.FirstName)
		m.store.AssertExpectations(t)
	})

	t.Run("exports disabled", func(t *testing.T) {
		svc := NewExportService(nil, nil, nil, nil, 0)

		exp, err := svc.ExportRestaurantReviews(ctx, 1)

		assert.ErrorIs(t, err, ErrExportsUnavailable)
		assert.Nil(t, exp)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		svc, m := newExportSvc(now)
		m.restaurants.On("FindByID", ctx, int64(1)).Return(nil, sql.ErrNoRows)

		_, err := svc.ExportRestaurantReviews(ctx, 1)

		assert.ErrorIs(t, err, ErrNotFound)
		m.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("storage error", func(t *testing.T) {
		svc, m := newExportSvc(now)
		m.expectRestaurant(ctx)
		m.store.On("Save", ctx, mock.Anything).
			Return(storage.Object{}, errors.New("storage fail"))

		_, err := svc.ExportRestaurantReviews(ctx, 1)

		assert.EqualError(t, err, "upload to storage: storage fail")
	})

	t.Run("presign error with rollback", func(t *testing.T) {
		svc, m := newExportSvc(now)
		m.expectRestaurant(ctx)
		m.store.On("Save", ctx, mock.Anything).
			Return(storage.Object{Key: "exports/restaurants/1/a.json"}, nil)
		m.store.On("DownloadURL", ctx, "exports/restaurants/1/a.json", time.Minute).Return("", errors.New("sign fail"))
		m.store.On("Remove", ctx, "exports/restaurants/1/a.json").Return(nil)

		_, err := svc.ExportRestaurantReviews(ctx, 1)

		assert.EqualError(t, err, "presign failed: sign fail")
		m.store.AssertExpectations(t)
	})

	t.Run("presign error with failed rollback", func(t *testing.T) {
		svc, m := newExportSvc(now)
		m.expectRestaurant(ctx)
		m.store.On("Save", ctx, mock.Anything).
			Return(storage.Object{Key: "k"}, nil)
		m.store.On("DownloadURL", ctx, "k", time.Minute).Return("", errors.New("sign fail"))
		m.store.On("Remove", ctx, "k").Return(errors.New("delete fail"))

		_, err := svc.ExportRestaurantReviews(ctx, 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rollback delete failed: delete fail")
	})
}
