package backend

import (
	"context"
	"net/http"

	"megamart/internal/domain/entity"
	"megamart/internal/domain/service"

	"github.com/pkg/errors"
)

// GetUser fetches a user's profile by id.
func (c *Client) GetUser(ctx context.Context, id string) (*entity.User, error) {
	var resp userPayload
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to fetch user")
	}

	return resp.toEntity(), nil
}

// UpdateUser patches the mutable profile fields and returns the updated
// record.
func (c *Client) UpdateUser(ctx context.Context, id string, update service.ProfileUpdate) (*entity.User, error) {
	patch := map[string]string{}
	if update.FullName != nil {
		patch["fullName"] = *update.FullName
	}
	if update.Phone != nil {
		patch["phone"] = *update.Phone
	}
	if update.Address != nil {
		patch["address"] = *update.Address
	}
	if update.AvatarURL != nil {
		patch["avatarUrl"] = *update.AvatarURL
	}

	var resp userPayload
	if err := c.do(ctx, http.MethodPatch, "/users/"+id, nil, patch, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return resp.toEntity(), nil
}
