package services

import (
	"context"

	"github.com/shopspring/decimal"

	"superstore/pkg/stripe"
)

// PaymentGateway authorizes charges. The amount is expressed in minor
// currency units; callers inspect the returned status.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*stripe.PaymentIntent, error)
}

// EventPublisher pushes side-effect messages onto the broker. Services
// treat publishing as best-effort and tolerate a nil publisher.
type EventPublisher interface {
	PublishOrderCreated(orderID, userID uint, total decimal.Decimal) error
	PublishPasswordReset(recipient, resetLink string) error
}
