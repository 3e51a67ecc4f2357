package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"megamart/internal/domain/entity"
	"megamart/internal/domain/repository"
	"megamart/internal/usecase"

	"github.com/pkg/errors"
)

// cartService implements the CartUsecase interface. The in-memory ledger is
// authoritative; storage is a mirror keyed per identity, switched whenever
// the session's identity changes.
type cartService struct {
	store  repository.KVStore
	logger *slog.Logger

	mu      sync.Mutex
	ready   bool
	key     string
	cart    entity.Cart
	pending []func(*entity.Cart)
}

// NewCartService is the constructor for cartService. It subscribes to
// identity changes so the cart follows whoever owns the session.
func NewCartService(
	store repository.KVStore,
	identities usecase.IdentitySource,
	logger *slog.Logger,
) usecase.CartUsecase {
	srv := &cartService{
		store:  store,
		logger: logger,
	}
	identities.Subscribe(context.Background(), srv.onIdentityChanged)

	return srv
}

// AddItem merges the item into the ledger.
func (srv *cartService) AddItem(ctx context.Context, item entity.LineItem) {
	srv.apply(ctx, func(c *entity.Cart) { c.Add(item) })
}

// RemoveItem drops a line by product id.
func (srv *cartService) RemoveItem(ctx context.Context, productID string) {
	srv.apply(ctx, func(c *entity.Cart) { c.Remove(productID) })
}

// ChangeQuantity steps a line's quantity. Invalid directions are ignored.
func (srv *cartService) ChangeQuantity(ctx context.Context, productID string, change entity.QuantityChange) {
	if !change.Valid() {
		srv.logger.Warn("Ignoring unknown quantity change", slog.String("change", string(change)))

		return
	}

	srv.apply(ctx, func(c *entity.Cart) { c.UpdateQuantity(productID, change) })
}

// Clear empties the cart and deletes its persisted key.
func (srv *cartService) Clear(ctx context.Context) {
	srv.apply(ctx, func(c *entity.Cart) { c.Clear() })
}

// View returns the current cart snapshot with derived figures.
func (srv *cartService) View() usecase.CartView {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return usecase.CartView{
		Items: srv.cart.Snapshot(),
		Count: srv.cart.Count(),
		Total: srv.cart.Total(),
	}
}

// apply runs one mutation against the ledger. While the identity is still
// unresolved the mutation is queued and replayed once the owning cart key
// is known, so nothing is ever written under a transient key.
func (srv *cartService) apply(ctx context.Context, mutate func(*entity.Cart)) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if !srv.ready {
		srv.pending = append(srv.pending, mutate)

		return
	}

	mutate(&srv.cart)
	srv.persistLocked(ctx)
}

// onIdentityChanged swaps the ledger to the new identity's cart key and
// replays any mutations queued while the identity was unresolved.
func (srv *cartService) onIdentityChanged(ctx context.Context, identity entity.Identity) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if identity.State == entity.IdentityUnknown {
		srv.ready = false

		return
	}

	key := identity.CartKey()
	if srv.ready && key == srv.key {
		return
	}

	srv.key = key
	srv.cart = srv.loadLocked(ctx, key)
	srv.ready = true

	if len(srv.pending) > 0 {
		for _, mutate := range srv.pending {
			mutate(&srv.cart)
		}
		srv.pending = nil
		srv.persistLocked(ctx)
	}

	srv.logger.Debug("Cart switched",
		slog.String("key", key),
		slog.Int("count", srv.cart.Count()),
	)
}

func (srv *cartService) loadLocked(ctx context.Context, key string) entity.Cart {
	raw, err := srv.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			srv.logger.Warn("Failed to load cart, starting empty", slog.String("key", key), slog.Any("error", err))
		}

		return entity.Cart{}
	}

	var items []entity.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		srv.logger.Warn("Stored cart is unreadable, starting empty", slog.String("key", key), slog.Any("error", err))

		return entity.Cart{}
	}

	return entity.Cart{Items: items}
}

// persistLocked mirrors the ledger to storage. An empty cart removes the
// key instead of storing an empty list. Failures are logged, never
// surfaced; the in-memory ledger stays authoritative.
func (srv *cartService) persistLocked(ctx context.Context) {
	if len(srv.cart.Items) == 0 {
		if err := srv.store.Remove(ctx, srv.key); err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
			srv.logger.Warn("Failed to remove cart key", slog.String("key", srv.key), slog.Any("error", err))
		}

		return
	}

	raw, err := json.Marshal(srv.cart.Items)
	if err != nil {
		srv.logger.Warn("Failed to encode cart", slog.Any("error", err))

		return
	}

	if err := srv.store.Set(ctx, srv.key, string(raw)); err != nil {
		srv.logger.Warn("Failed to persist cart", slog.String("key", srv.key), slog.Any("error", err))
	}
}
