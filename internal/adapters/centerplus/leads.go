package centerplus

import (
	"context"
	"net/http"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
)

// CreateLead posts a normalized lead payload to the tenant API and returns
// the response body verbatim as the receipt. The caller owns any follow-up
// (resetting the form, closing the modal); nothing is retried here.
func (c *Client) CreateLead(ctx context.Context, payload *domain.LeadPayload) (*domain.LeadReceipt, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/leads/public", nil, payload)
	if err != nil {
		return nil, err
	}
	return &domain.LeadReceipt{Body: body}, nil
}
