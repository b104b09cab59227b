package simulated

import (
	"context"
	"time"

	"github.com/boofmebel/boofmebel/internal/delivery"
	"github.com/boofmebel/boofmebel/internal/domain"
)

const (
	DefaultQuoteDelay = 500 * time.Millisecond
	QuoteETA          = "1–3 дня"
)

// Quoter is a stand-in delivery tariff service
type Quoter struct {
	delay time.Duration
}

func NewQuoter(delay time.Duration) *Quoter {
	return &Quoter{delay: delay}
}

func (q *Quoter) Quote(ctx context.Context, address string, weight float64) (domain.Quote, error) {
	if err := latency(ctx, q.delay); err != nil {
		return domain.Quote{}, err
	}
	return domain.Quote{Price: delivery.Tariff(weight), ETA: QuoteETA, Address: address}, nil
}
