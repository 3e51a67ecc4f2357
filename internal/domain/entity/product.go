package entity

import "time"

// Product is a catalog entry as consumed from the backend. Price is always
// a normalized integer by the time it reaches the domain.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category,omitempty"`
	Subcategory string    `json:"subcategory,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Category groups products for browsing.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Subcategory is a second-level grouping under a category.
type Subcategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

// ParsePrice normalizes a possibly formatted currency string to an integer
// by keeping only its digits, so "₹32,999" becomes 32999. Strings without
// digits normalize to zero.
func ParsePrice(raw string) int64 {
	var value int64
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		value = value*10 + int64(r-'0')
	}

	return value
}
