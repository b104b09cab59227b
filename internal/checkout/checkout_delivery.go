package checkout

import (
	"context"

	"github.com/boofmebel/boofmebel/internal/domain"
)

func (o *Orchestrator) bookDelivery(ctx context.Context, address string, items []domain.LineItem) (domain.DeliveryBooking, error) {
	return callStage(ctx, o.cfg.StageTimeout, "delivery booking", func(ctx context.Context) (domain.DeliveryBooking, error) {
		return o.delivery.Book(ctx, address, items)
	})
}
