package backend

import (
	"encoding/json"
	"time"

	"megamart/internal/domain/entity"
)

// flexPrice accepts both numeric prices and formatted currency strings
// ("₹32,999") from the backend and normalizes them to an integer at the
// decoding boundary, so the domain only ever sees numbers.
type flexPrice int64

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*p = flexPrice(entity.ParsePrice(asString))

		return nil
	}

	var asNumber float64
	if err := json.Unmarshal(data, &asNumber); err != nil {
		// Unparseable prices normalize to zero rather than failing the
		// whole listing.
		*p = 0

		return nil
	}
	*p = flexPrice(int64(asNumber))

	return nil
}

type userPayload struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AvatarURL     string `json:"avatarUrl"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

func (p *userPayload) toEntity() *entity.User {
	if p == nil {
		return nil
	}

	return &entity.User{
		ID:            p.ID,
		FullName:      p.FullName,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		AvatarURL:     p.AvatarURL,
		Role:          p.Role,
		EmailVerified: p.EmailVerified,
	}
}

type productPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       flexPrice `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Sizes       []string  `json:"sizes"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p productPayload) toEntity() entity.Product {
	return entity.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       int64(p.Price),
		Image:       p.Image,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Sizes:       p.Sizes,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
	}
}

type wishlistPayload struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     flexPrice `json:"price"`
	Image     string    `json:"image"`
}

func (p wishlistPayload) toEntity() entity.WishlistItem {
	return entity.WishlistItem{
		ID:        p.ID,
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     int64(p.Price),
		Image:     p.Image,
	}
}

type orderItemPayload struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    flexPrice `json:"price"`
	Image    string    `json:"image"`
	Quantity int       `json:"quantity"`
	Size     string    `json:"size"`
}

type orderPayload struct {
	ID              string             `json:"id"`
	UserID          string             `json:"userId"`
	Items           []orderItemPayload `json:"items"`
	Status          string             `json:"status"`
	ShippingAddress string             `json:"shippingAddress"`
	PlacedAt        time.Time          `json:"placedAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func (p orderPayload) toEntity() entity.Order {
	items := make([]entity.LineItem, 0, len(p.Items))
	for _, item := range p.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, entity.LineItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    int64(item.Price),
			Image:    item.Image,
			Quantity: quantity,
			Size:     item.Size,
		})
	}

	order := entity.Order{
		ID:              p.ID,
		UserID:          p.UserID,
		Items:           items,
		Status:          entity.OrderStatus(p.Status),
		ShippingAddress: p.ShippingAddress,
		PlacedAt:        p.PlacedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	cart := entity.Cart{Items: items}
	order.Count = cart.Count()
	order.Total = cart.Total()

	return order
}
