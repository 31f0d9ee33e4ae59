package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
	"reviewapi/internal/storage"
)

const exportPrefix = "exports/restaurants"

// ExportService writes review snapshots to object storage.
type ExportService interface {
	// ExportRestaurantReviews stores a JSON snapshot of the restaurant, its reviews and
	// their authors, and returns a presigned URL for downloading it.
	ExportRestaurantReviews(ctx context.Context, restaurantID int64) (*model.ReviewExport, error)
}

type exportService struct {
	store       storage.ExportStore
	restaurants repository.RestaurantRepository
	customers   repository.CustomerRepository
	reviews     repository.ReviewRepository
	ttl         time.Duration
	now         func() time.Time
}

// NewExportService constructs a new ExportService. A nil store disables exports.
func NewExportService(store storage.ExportStore, restaurants repository.RestaurantRepository, customers repository.CustomerRepository, reviews repository.ReviewRepository, ttl time.Duration) ExportService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &exportService{
		store:       store,
		restaurants: restaurants,
		customers:   customers,
		reviews:     reviews,
		ttl:         ttl,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *exportService) ExportRestaurantReviews(ctx context.Context, restaurantID int64) (*model.ReviewExport, error) {
	if s.store == nil {
		return nil, ErrExportsUnavailable
	}
	if restaurantID <= 0 {
		return nil, ErrInvalidID
	}

	rest, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, notFound(err)
	}
	reviews, err := s.reviews.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	customers, err := s.customers.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	byID := make(map[int64]model.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	now := s.now()
	snap := model.ReviewSnapshot{
		Restaurant:  *rest,
		Reviews:     make([]model.SnapshotReview, 0, len(reviews)),
		GeneratedAt: now,
	}
	for _, v := range reviews {
		author, ok := byID[v.CustomerID]
		if !ok {
			author = model.Customer{ID: v.CustomerID}
		}
		snap.Reviews = append(snap.Reviews, model.SnapshotReview{
			ID:         v.ID,
			StarRating: v.StarRating,
			Customer:   author,
		})
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	id := strconv.FormatInt(restaurantID, 10)
	key := path.Join(exportPrefix, id, uuid.NewString()+".json")

	obj, err := s.store.Save(ctx, storage.Upload{
		Key:         key,
		Body:        body,
		ContentType: "application/json",
		Metadata: map[string]string{
			"restaurant-id": id,
			"review-count":  strconv.Itoa(len(reviews)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.DownloadURL(ctx, obj.Key, s.ttl)
	if err != nil {
		// Rollback: remove the object that cannot be handed out
		if delErr := s.store.Remove(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}

	return &model.ReviewExport{
		RestaurantID: restaurantID,
		Key:          obj.Key,
		URL:          url,
		ReviewCount:  len(reviews),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}, nil
}
