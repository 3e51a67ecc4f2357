package backend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"megamart/config"
	domainerrors "megamart/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentials struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	replaced     []string
	loggedOut    bool
}

func (f *fakeCredentials) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.accessToken
}

func (f *fakeCredentials) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.refreshToken
}

func (f *fakeCredentials) ReplaceAccessToken(_ context.Context, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.accessToken = token
	f.replaced = append(f.replaced, token)
}

func (f *fakeCredentials) ForceLogout(_ context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loggedOut = true
	f.accessToken = ""
	f.refreshToken = ""
}

func (f *fakeCredentials) wasLoggedOut() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.loggedOut
}

func newTestClient(t *testing.T, baseURL string, creds CredentialSource) *Client {
	t.Helper()

	client, err := NewClient(Params{
		Config: &config.Config{
			Backend: config.BackendConfig{
				BaseURL: baseURL,
				Timeout: 5 * time.Second,
			},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	if creds != nil {
		client.BindCredentials(creds)
	}

	return client
}

func TestClient_InjectsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	creds := &fakeCredentials{accessToken: "token-1", refreshToken: "refresh-1"}
	client := newTestClient(t, server.URL, creds)

	_, err := client.AllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", gotAuth)
}

func TestClient_SkipsBearerWhenAnonymous(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeCredentials{})

	_, err := client.AllProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_RefreshesOnceAndRetries(t *testing.T) {
	t.Parallel()

	var refreshCalls, productCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)

			var req refreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "refresh-1", req.RefreshToken)

			_, _ = w.Write([]byte(`{"accessToken":"token-2"}`))
		case "/products/all":
			productCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer token-2" {
				w.WriteHeader(http.StatusUnauthorized)

				return
			}
			_, _ = w.Write([]byte(`{"products":[{"id":"p1","name":"Sneaker","price":"₹2,499"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	creds := &fakeCredentials{accessToken: "stale", refreshToken: "refresh-1"}
	client := newTestClient(t, server.URL, creds)

	products, err := client.AllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(2499), products[0].Price)

	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), productCalls.Load())
	assert.Equal(t, "token-2", creds.AccessToken())
	assert.False(t, creds.wasLoggedOut())
}

func TestClient_RefreshFailureForcesLogout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"refresh token revoked"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	creds := &fakeCredentials{accessToken: "stale", refreshToken: "revoked"}
	client := newTestClient(t, server.URL, creds)

	_, err := client.AllProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
	assert.True(t, creds.wasLoggedOut())
}

func TestClient_SecondUnauthorizedStopsWithoutSecondRefresh(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			refreshCalls.Add(1)
			_, _ = w.Write([]byte(`{"accessToken":"token-2"}`))

			return
		}
		// Rejects the retry too, fresh token or not.
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	creds := &fakeCredentials{accessToken: "stale", refreshToken: "refresh-1"}
	client := newTestClient(t, server.URL, creds)

	_, err := client.AllProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.False(t, creds.wasLoggedOut())
}

func TestClient_ConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			<-release
			_, _ = w.Write([]byte(`{"accessToken":"token-2"}`))
		default:
			if r.Header.Get("Authorization") == "Bearer token-2" {
				_, _ = w.Write([]byte(`{"products":[]}`))

				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	creds := &fakeCredentials{accessToken: "stale", refreshToken: "refresh-1"}
	client := newTestClient(t, server.URL, creds)

	const workers = 5
	errs := make(chan error, workers)
	var started sync.WaitGroup
	started.Add(workers)
	for range workers {
		go func() {
			started.Done()
			_, err := client.AllProducts(context.Background())
			errs <- err
		}()
	}

	started.Wait()
	// Give every worker time to hit the 401 and queue on the refresh.
	time.Sleep(100 * time.Millisecond)
	close(release)

	for range workers {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Len(t, creds.replaced, 1)
}

func TestClient_NetworkErrorIsWrapped(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://127.0.0.1:1", nil)

	_, err := client.AllProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNetworkUnavailable)
}

func TestClient_MapsErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid payload","errors":{"email":"required"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	err := client.RequestResetLink(context.Background(), "")
	require.Error(t, err)

	var remoteErr *domainerrors.RemoteCallError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadRequest, remoteErr.HTTPCode())
	assert.Contains(t, remoteErr.Details(), "email: required")
}

func TestClient_AuthEndpointsDoNotRecurse(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			refreshCalls.Add(1)
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	defer server.Close()

	creds := &fakeCredentials{accessToken: "stale", refreshToken: "refresh-1"}
	client := newTestClient(t, server.URL, creds)

	_, err := client.Signin(context.Background(), "a@b.c", "nope")
	require.Error(t, err)

	var remoteErr *domainerrors.RemoteCallError
	assert.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, int32(0), refreshCalls.Load())
	assert.False(t, creds.wasLoggedOut())
}
