package model

// Customer is a person who leaves reviews.
// Reviews and the restaurants a customer reviewed are not embedded here; they are
// fetched through the repository so the reviews table stays the only source of truth.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
