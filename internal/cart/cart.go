package cart

// Item is one line in the cart. Items are keyed by package id; adding an
// id that is already present bumps Qty instead of appending.
type Item struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}
