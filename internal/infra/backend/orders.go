package backend

import (
	"context"
	"net/http"

	"megamart/internal/domain/entity"

	"github.com/pkg/errors"
)

type ordersResponse struct {
	Orders []orderPayload `json:"orders"`
}

// RemoteOrders lists the order history held by the backend.
func (c *Client) RemoteOrders(ctx context.Context) ([]entity.Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to fetch orders")
	}

	orders := make([]entity.Order, 0, len(resp.Orders))
	for _, order := range resp.Orders {
		orders = append(orders, order.toEntity())
	}

	return orders, nil
}

// RemoteOrder fetches a single backend order by id.
func (c *Client) RemoteOrder(ctx context.Context, id string) (*entity.Order, error) {
	var resp orderPayload
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, nil, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to fetch order")
	}

	order := resp.toEntity()

	return &order, nil
}
