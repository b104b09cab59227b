package checkout

import (
	"context"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/pkg/circuitbreaker"
)

type breakerGateway struct {
	next PaymentGateway
	cb   *circuitbreaker.Breaker[domain.PaymentReceipt]
}

// WithPaymentBreaker stops calling a payment gateway that keeps failing.
// Declines are not failures; only errors count towards opening the breaker.
func WithPaymentBreaker(next PaymentGateway, cb *circuitbreaker.Breaker[domain.PaymentReceipt]) PaymentGateway {
	return &breakerGateway{next: next, cb: cb}
}

func (g *breakerGateway) Charge(ctx context.Context, payload domain.CheckoutPayload) (domain.PaymentReceipt, error) {
	return g.cb.Execute(func() (domain.PaymentReceipt, error) {
		return g.next.Charge(ctx, payload)
	})
}

type breakerBooker struct {
	next DeliveryBooker
	cb   *circuitbreaker.Breaker[domain.DeliveryBooking]
}

func WithBookingBreaker(next DeliveryBooker, cb *circuitbreaker.Breaker[domain.DeliveryBooking]) DeliveryBooker {
	return &breakerBooker{next: next, cb: cb}
}

func (b *breakerBooker) Book(ctx context.Context, address string, items []domain.LineItem) (domain.DeliveryBooking, error) {
	return b.cb.Execute(func() (domain.DeliveryBooking, error) {
		return b.next.Book(ctx, address, items)
	})
}
