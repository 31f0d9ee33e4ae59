package model

// Review links one Customer to one Restaurant with a star rating.
// It is the association row behind the customer/restaurant many-to-many view.
type Review struct {
	ID           int64 `json:"id"`
	StarRating   int   `json:"star_rating"`
	CustomerID   int64 `json:"customer_id"`
	RestaurantID int64 `json:"restaurant_id"`
}
