package delivery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/pricing"
)

// DefaultQuoteTimeout bounds a single provider call
const DefaultQuoteTimeout = 5 * time.Second

var ErrEmptyAddress = errors.New("empty delivery address")

// QuoteProvider prices delivery of the given weight to an address
type QuoteProvider interface {
	Quote(ctx context.Context, address string, weight float64) (domain.Quote, error)
}

// WeightSource reports the aggregate weight of the cart
type WeightSource interface {
	TotalWeight() float64
}

// Estimator produces advisory delivery quotes. It never touches checkout.
type Estimator struct {
	provider QuoteProvider
	weights  WeightSource
	timeout  time.Duration
	group    singleflight.Group
	log      *zap.Logger
}

type Option func(*Estimator)

// WithTimeout bounds each provider call; zero or less disables the bound
func WithTimeout(d time.Duration) Option {
	return func(e *Estimator) { e.timeout = d }
}

func NewEstimator(provider QuoteProvider, weights WeightSource, log *zap.Logger, opts ...Option) *Estimator {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Estimator{provider: provider, weights: weights, timeout: DefaultQuoteTimeout, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate quotes delivery to address for the current cart weight.
// A blank address fails with ErrEmptyAddress before the provider is called.
// Identical requests in flight at the same time share one provider call, and each
// caller stops waiting when its own ctx is done.
func (e *Estimator) Estimate(ctx context.Context, address string) (domain.Quote, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Quote{}, ErrEmptyAddress
	}

	weight := e.weights.TotalWeight()
	if weight <= 0 {
		weight = DefaultWeight
	}

	key := address + "|" + strconv.FormatFloat(weight, 'f', -1, 64)
	ch := e.group.DoChan(key, func() (any, error) {
		// shared by every caller of key, so no single caller's cancellation applies
		callCtx := context.WithoutCancel(ctx)
		if e.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, e.timeout)
			defer cancel()
		}
		return e.provider.Quote(callCtx, address, weight)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		e.log.Debug("delivery quote abandoned", zap.String("address", address), zap.Error(ctx.Err()))
		return domain.Quote{}, fmt.Errorf("delivery quote failed: %w", ctx.Err())
	}
	if res.Err != nil {
		e.log.Warn("delivery quote failed", zap.String("address", address), zap.Error(res.Err))
		return domain.Quote{}, fmt.Errorf("delivery quote failed: %w", res.Err)
	}

	q := res.Val.(domain.Quote)
	q.Address = address
	e.log.Debug("delivery quoted",
		zap.Float64("weight", weight),
		zap.Int64("price", q.Price),
		zap.Bool("shared", res.Shared))
	return q, nil
}

// StatusFor is the text shown in the quote region
func StatusFor(q domain.Quote) domain.Status {
	return domain.SuccessStatus(fmt.Sprintf("Доставка ~%s • срок %s", pricing.FormatPrice(q.Price), q.ETA))
}

// ErrorStatus maps an estimate failure to its user-facing status
func ErrorStatus(err error) domain.Status {
	if errors.Is(err, ErrEmptyAddress) {
		return domain.ErrorStatus("Укажите адрес для расчёта")
	}
	return domain.ErrorStatus("Не удалось рассчитать доставку. Попробуйте ещё раз.")
}
