package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/domain/repository"
	"megamart/internal/domain/service"
	"megamart/internal/usecase"

	"github.com/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory KVStore with injectable failures.
type fakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}

	return value, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value

	return nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.data[key]; !ok {
		return repository.ErrKeyNotFound
	}
	delete(f.data, key)

	return nil
}

func (f *fakeStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = map[string]string{}

	return nil
}

func (f *fakeStore) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]

	return value, ok
}

// identityStub is a hand-driven IdentitySource for container tests.
type identityStub struct {
	mu        sync.Mutex
	identity  entity.Identity
	observers []usecase.IdentityObserver
}

func newIdentityStub(state entity.IdentityState, user *entity.User) *identityStub {
	return &identityStub{identity: entity.Identity{State: state, User: user}}
}

func (s *identityStub) Identity() entity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity
}

func (s *identityStub) Subscribe(ctx context.Context, observer usecase.IdentityObserver) {
	s.mu.Lock()
	s.observers = append(s.observers, observer)
	identity := s.identity
	s.mu.Unlock()

	observer(ctx, identity)
}

func (s *identityStub) become(ctx context.Context, state entity.IdentityState, user *entity.User) {
	s.mu.Lock()
	s.identity = entity.Identity{State: state, User: user}
	identity := s.identity
	observers := append([]usecase.IdentityObserver(nil), s.observers...)
	s.mu.Unlock()

	for _, observer := range observers {
		observer(ctx, identity)
	}
}

// fakeAuthBackend implements service.AuthBackend with pluggable behavior.
type fakeAuthBackend struct {
	signupFn  func(ctx context.Context, input service.SignupInput) (*service.SignupResult, error)
	signinFn  func(ctx context.Context, email, password string) (*service.Credentials, error)
	refreshFn func(ctx context.Context, refreshToken string) (string, error)
}

func (f *fakeAuthBackend) Signup(ctx context.Context, input service.SignupInput) (*service.SignupResult, error) {
	if f.signupFn == nil {
		return nil, errors.New("unexpected Signup call")
	}

	return f.signupFn(ctx, input)
}

func (f *fakeAuthBackend) Signin(ctx context.Context, email, password string) (*service.Credentials, error) {
	if f.signinFn == nil {
		return nil, errors.New("unexpected Signin call")
	}

	return f.signinFn(ctx, email, password)
}

func (f *fakeAuthBackend) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if f.refreshFn == nil {
		return "", errors.New("unexpected RefreshAccessToken call")
	}

	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuthBackend) ChangePassword(context.Context, string) error { return nil }

func (f *fakeAuthBackend) RequestResetLink(context.Context, string) error { return nil }

func (f *fakeAuthBackend) VerifyEmail(context.Context, string) error { return nil }

func (f *fakeAuthBackend) ResendVerification(context.Context, string) error { return nil }

// fakeInspector returns an empty claim set for any token.
type fakeInspector struct{}

func (fakeInspector) Inspect(string) (*service.TokenInfo, error) {
	return &service.TokenInfo{}, nil
}

// fakeCatalogBackend implements service.CatalogBackend.
type fakeCatalogBackend struct {
	products []entity.Product
	err      error
}

func (f *fakeCatalogBackend) AllProducts(context.Context) ([]entity.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalogBackend) Categories(context.Context) ([]entity.Category, error) {
	return nil, f.err
}

func (f *fakeCatalogBackend) Subcategories(context.Context, string) ([]entity.Subcategory, error) {
	return nil, f.err
}

// fakeUserBackend implements service.UserBackend.
type fakeUserBackend struct {
	getFn    func(ctx context.Context, id string) (*entity.User, error)
	updateFn func(ctx context.Context, id string, update service.ProfileUpdate) (*entity.User, error)
}

func (f *fakeUserBackend) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeUserBackend) UpdateUser(ctx context.Context, id string, update service.ProfileUpdate) (*entity.User, error) {
	return f.updateFn(ctx, id, update)
}

// fakeWishlistBackend implements service.WishlistBackend.
type fakeWishlistBackend struct {
	items []entity.WishlistItem
	err   error
}

func (f *fakeWishlistBackend) Wishlist(context.Context) ([]entity.WishlistItem, error) {
	return f.items, f.err
}

func (f *fakeWishlistBackend) AddWishlistItem(_ context.Context, productID string) (*entity.WishlistItem, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &entity.WishlistItem{ID: "w-" + productID, ProductID: productID}, nil
}

func (f *fakeWishlistBackend) RemoveWishlistItem(context.Context, string) error {
	return f.err
}

// fakeOrderBackend implements service.OrderBackend.
type fakeOrderBackend struct {
	orders []entity.Order
	err    error
}

func (f *fakeOrderBackend) RemoteOrders(context.Context) ([]entity.Order, error) {
	return f.orders, f.err
}

func (f *fakeOrderBackend) RemoteOrder(_ context.Context, id string) (*entity.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}

	return nil, errors.Wrapf(domainerrors.ErrOrderNotFound, "order %s", id)
}

// fakeQRService implements service.QRCodeService. Parsing hands the payload
// back as the order id unless a failure is injected.
type fakeQRService struct {
	parseErr error
}

func (fakeQRService) GenerateOrderQR(orderID string) ([]byte, error) {
	return []byte("png:" + orderID), nil
}

func (f fakeQRService) ParseOrderQR(qrData string) (string, error) {
	if f.parseErr != nil {
		return "", f.parseErr
	}

	return qrData, nil
}

// sessionStub satisfies SessionUsecase for services that only need the
// identity and user-replacement surface.
type sessionStub struct {
	usecase.SessionUsecase

	identity entity.Identity
	replaced *entity.User
}

func (s *sessionStub) Identity() entity.Identity {
	return s.identity
}

func (s *sessionStub) ReplaceUser(_ context.Context, user *entity.User) {
	s.replaced = user
}
