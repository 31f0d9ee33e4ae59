package model

import "time"

// ReviewExport describes a review snapshot written to object storage.
type ReviewExport struct {
	RestaurantID int64     `json:"restaurant_id"`
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	ReviewCount  int       `json:"review_count"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ReviewSnapshot is the JSON document stored for an export.
type ReviewSnapshot struct {
	Restaurant  Restaurant       `json:"restaurant"`
	Reviews     []SnapshotReview `json:"reviews"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// SnapshotReview is a review joined with its author.
type SnapshotReview struct {
	ID         int64    `json:"id"`
	StarRating int      `json:"star_rating"`
	Customer   Customer `json:"customer"`
}
