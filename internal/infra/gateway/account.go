package gateway

import (
	"context"
	"fmt"
	"net/http"

	"court-grid/internal/usecase/shared"
)

func (c *Client) LookupCustomer(ctx context.Context, customerID int64) (*shared.CustomerDetails, error) {
	var env itemEnvelope[customerDetailsDTO]
	err := c.do(ctx, request{
		op:     "lookup_customer",
		method: http.MethodGet,
		path:   fmt.Sprintf("/customers/%d", customerID),
	}, &env)
	if err != nil {
		return nil, err
	}
	d := env.Data
	return &shared.CustomerDetails{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		Email:     d.Email,
		AvatarURL: d.AvatarURL,
	}, nil
}
