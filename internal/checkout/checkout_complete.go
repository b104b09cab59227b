package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
)

func (o *Orchestrator) complete(ctx context.Context, log *zap.Logger, a *attempt, booking domain.DeliveryBooking) (*Result, error) {
	if err := a.advance(domain.CheckoutStageSucceeded); err != nil {
		return a.result, err
	}
	a.result.Booking = &booking

	// the order is already paid and booked, a failed clear must not fail the attempt
	if err := o.cart.Clear(ctx); err != nil {
		log.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	log.Info("checkout completed",
		zap.Int("delivery_id", booking.ID),
		zap.String("tracking", booking.Tracking))

	msg := fmt.Sprintf("Оплачено. Доставка создана: №%d, срок %s. Трек: %s", booking.ID, booking.ETA, booking.Tracking)
	o.emit(ctx, a, domain.SuccessStatus(msg), &booking)
	return a.result, nil
}
