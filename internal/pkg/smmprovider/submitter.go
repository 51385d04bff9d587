package smmprovider

import (
	"context"
)

// OrderSubmitter hands a placed order to the upstream provider. The real
// submission call lives outside the catalog pipeline; the storefront only
// depends on this boundary.
type OrderSubmitter interface {
	Submit(ctx context.Context, svc Service, link string, quantity int) (providerOrderID string, err error)
}

// NoopSubmitter records nothing upstream. Deployments wire a real submitter;
// everything else (catalog, pricing, order rows) works without one.
type NoopSubmitter struct{}

func (NoopSubmitter) Submit(ctx context.Context, svc Service, link string, quantity int) (string, error) {
	return "", nil
}
