package checkout

import (
	"context"

	"github.com/boofmebel/boofmebel/internal/domain"
)

func (o *Orchestrator) processPayment(ctx context.Context, payload domain.CheckoutPayload) (domain.PaymentReceipt, error) {
	return callStage(ctx, o.cfg.StageTimeout, "payment", func(ctx context.Context) (domain.PaymentReceipt, error) {
		return o.payment.Charge(ctx, payload)
	})
}
