package usecase

import (
	"context"

	"megamart/internal/domain/entity"
)

// CartView is a read-only snapshot of the cart with its derived figures.
type CartView struct {
	Items []entity.LineItem
	Count int
	Total int64
}

// CartUsecase is the cart state container. Mutations return no error: a
// failed persist is logged and the in-memory ledger stays authoritative,
// matching the fail-silent storage contract.
type CartUsecase interface {
	// AddItem merges the item into the ledger: an existing line's quantity
	// grows by the added amount, a new line is appended.
	AddItem(ctx context.Context, item entity.LineItem)

	// RemoveItem drops a line by product id. Unknown ids are a no-op.
	RemoveItem(ctx context.Context, productID string)

	// ChangeQuantity steps a line's quantity up or down. Decreasing never
	// goes below one; removal is only ever explicit.
	ChangeQuantity(ctx context.Context, productID string, change entity.QuantityChange)

	// Clear empties the cart and deletes its persisted key.
	Clear(ctx context.Context)

	// View returns the current cart snapshot.
	View() CartView
}
