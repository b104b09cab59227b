package simulated

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
)

const (
	DefaultPaymentDelay = 700 * time.Millisecond
	StatusDeclined      = "declined"
)

// StatusPicker decides the outcome of a simulated charge
type StatusPicker interface {
	PickStatus() string
}

// AlwaysPaid approves every charge
type AlwaysPaid struct{}

func (AlwaysPaid) PickStatus() string {
	return domain.PaymentStatusPaid
}

// RandomStatus declines roughly DeclinePercent of charges
type RandomStatus struct {
	DeclinePercent int
}

func (r RandomStatus) PickStatus() string {
	return calcStatus(rand.IntN(100), r.DeclinePercent)
}

func calcStatus(roll, declinePercent int) string {
	if roll < 100-declinePercent {
		return domain.PaymentStatusPaid
	}
	return StatusDeclined
}

// Payment is a stand-in payment gateway
type Payment struct {
	delay  time.Duration
	status StatusPicker
	log    *zap.Logger
}

func NewPayment(delay time.Duration, status StatusPicker, log *zap.Logger) *Payment {
	if status == nil {
		status = AlwaysPaid{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Payment{delay: delay, status: status, log: log}
}

func (p *Payment) Charge(ctx context.Context, payload domain.CheckoutPayload) (domain.PaymentReceipt, error) {
	if err := latency(ctx, p.delay); err != nil {
		return domain.PaymentReceipt{}, err
	}
	receipt := domain.PaymentReceipt{
		Status:        p.status.PickStatus(),
		TransactionID: code("TEST-"),
		Amount:        payload.Total,
	}
	p.log.Debug("simulated charge",
		zap.String("status", receipt.Status),
		zap.String("transaction_id", receipt.TransactionID),
		zap.Int64("amount", receipt.Amount))
	return receipt, nil
}
