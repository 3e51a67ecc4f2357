package entity

// WishlistItem is a saved-for-later product reference held by the backend.
type WishlistItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
}
