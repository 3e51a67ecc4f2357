// Package delivery defines the contract every delivery mechanism satisfies.
package delivery

import "context"

// Delivery is a long-running surface that serves the storefront, such as
// the HTTP server. Serve blocks until the surface stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
