package model

// Restaurant is a reviewable venue. Price is stored as an integer amount.
type Restaurant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}
