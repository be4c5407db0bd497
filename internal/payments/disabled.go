package payments

import (
	"context"
	"errors"
)

// Disabled stands in when no processor key is configured, so the rest of the
// API still works while /create-payment-intent reports its failure.
type Disabled struct{}

func (Disabled) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	return "", errors.New("payment processor is not configured")
}
