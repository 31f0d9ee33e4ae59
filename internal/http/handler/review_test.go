package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
	"reviewapi/internal/service"
	serviceMocks "reviewapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewApp(svc service.ReviewService) *fiber.App {
	app := fiber.New()
	app.Post("/reviews", CreateReview(svc))
	app.Get("/reviews", ListReviews(svc))
	app.Get("/reviews/:id", GetReview(svc))
	app.Delete("/reviews/:id", DeleteReview(svc))
	app.Get("/reviews/:id/customer", ReviewCustomer(svc))
	app.Get("/reviews/:id/restaurant", ReviewRestaurant(svc))
	return app
}

func TestCreateReview(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newReviewApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, 8, int64(1), int64(2)).
			Return(&model.Review{ID: 1, StarRating: 8, CustomerID: 1, RestaurantID: 2}, nil).Once()

		resp := doJSON(t, app, http.MethodPost, "/reviews", `{"star_rating":8,"customer_id":1,"restaurant_id":2}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got model.Review
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(2), got.RestaurantID)
	})

	t.Run("unresolved customer", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, 5, int64(99), int64(1)).
			Return(nil, fmt.Errorf("%w: fk_reviews_customer_id_customers", repository.ErrForeignKeyViolation)).Once()

		resp := doJSON(t, app, http.MethodPost, "/reviews", `{"star_rating":5,"customer_id":99,"restaurant_id":1}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "UNRESOLVED_REFERENCE", decodeError(t, resp).Error.Code)
	})

	t.Run("missing star rating", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/reviews", `{"customer_id":1,"restaurant_id":1}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "star_rating is required", decodeError(t, resp).Error.Message)
	})

	t.Run("invalid ids", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, 5, int64(0), int64(1)).Return(nil, service.ErrInvalidID).Once()

		resp := doJSON(t, app, http.MethodPost, "/reviews", `{"star_rating":5,"restaurant_id":1}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestReviewReadAndDelete(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newReviewApp(mockSvc)

	mockSvc.On("List", mock.Anything, 2, 0).Return(&service.ListResult[model.Review]{
		Items: []model.Review{{ID: 1}, {ID: 2}},
		Total: 4,
	}, nil).Once()
	mockSvc.On("Get", mock.Anything, int64(1)).Return(&model.Review{ID: 1, StarRating: 5}, nil).Once()
	mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	mockSvc.On("Delete", mock.Anything, int64(7)).Return(service.ErrNotFound).Once()

	resp := doJSON(t, app, http.MethodGet, "/reviews?limit=2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/reviews/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/reviews/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/reviews/7", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "review not found", decodeError(t, resp).Error.Message)

	mockSvc.AssertExpectations(t)
}

func TestReviewParents(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newReviewApp(mockSvc)

	mockSvc.On("Customer", mock.Anything, int64(2)).Return(&model.Customer{ID: 1, FirstName: "A"}, nil).Once()
	mockSvc.On("Restaurant", mock.Anything, int64(2)).Return(&model.Restaurant{ID: 2, Name: "Y"}, nil).Once()

	resp := doJSON(t, app, http.MethodGet, "/reviews/2/customer", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var c model.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
	assert.Equal(t, "A", c.FirstName)

	resp = doJSON(t, app, http.MethodGet, "/reviews/2/restaurant", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var r model.Restaurant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	assert.Equal(t, "Y", r.Name)

	mockSvc.AssertExpectations(t)
}
