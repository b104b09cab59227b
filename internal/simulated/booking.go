package simulated

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
)

const (
	DefaultBookingDelay = 500 * time.Millisecond
	BookingETA          = "2–4 дня"
)

// Booker is a stand-in delivery booking service
type Booker struct {
	delay time.Duration
	log   *zap.Logger
}

func NewBooker(delay time.Duration, log *zap.Logger) *Booker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Booker{delay: delay, log: log}
}

func (b *Booker) Book(ctx context.Context, address string, items []domain.LineItem) (domain.DeliveryBooking, error) {
	if err := latency(ctx, b.delay); err != nil {
		return domain.DeliveryBooking{}, err
	}
	booking := domain.DeliveryBooking{
		ID:       10000 + rand.IntN(90000),
		ETA:      BookingETA,
		Tracking: code("YD-"),
	}
	b.log.Debug("simulated delivery booking",
		zap.Int("id", booking.ID),
		zap.Int("items", len(items)),
		zap.String("address", address))
	return booking, nil
}
