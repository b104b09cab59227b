package checkout

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
)

// Cart is the part of the cart ledger the orchestrator reads and clears.
// Items must return a snapshot; the charged total is derived from it.
type Cart interface {
	Items() []domain.LineItem
	Clear(ctx context.Context) error
}

// PaymentGateway charges a checkout payload. A receipt whose status is not "paid" is a decline.
type PaymentGateway interface {
	Charge(ctx context.Context, payload domain.CheckoutPayload) (domain.PaymentReceipt, error)
}

// DeliveryBooker books delivery of paid items
type DeliveryBooker interface {
	Book(ctx context.Context, address string, items []domain.LineItem) (domain.DeliveryBooking, error)
}

// StatusSink receives every status emitted during an attempt. Sinks must not block for long.
type StatusSink interface {
	Notify(ctx context.Context, event StatusEvent)
}

type StatusEvent struct {
	AttemptID string                  `json:"attempt_id"`
	Stage     domain.CheckoutStage    `json:"stage"`
	Status    domain.Status           `json:"status"`
	Booking   *domain.DeliveryBooking `json:"booking,omitempty"`
	At        time.Time               `json:"at"`
}

// Result describes how an attempt ended
type Result struct {
	AttemptID string                  `json:"attempt_id"`
	Stage     domain.CheckoutStage    `json:"stage"`
	Status    domain.Status           `json:"status"`
	Payment   *domain.PaymentReceipt  `json:"payment,omitempty"`
	Booking   *domain.DeliveryBooking `json:"booking,omitempty"`
	Events    []StatusEvent           `json:"events"`
}

type Config struct {
	SettleDelay  time.Duration // pause between building the payload and charging
	StageTimeout time.Duration // per collaborator call, zero disables
}

func DefaultConfig() Config {
	return Config{
		SettleDelay:  400 * time.Millisecond,
		StageTimeout: 5 * time.Second,
	}
}

// Orchestrator drives checkout attempts one at a time
type Orchestrator struct {
	cart     Cart
	payment  PaymentGateway
	delivery DeliveryBooker
	sinks    []StatusSink
	cfg      Config
	validate *validator.Validate
	log      *zap.Logger

	inFlight atomic.Bool

	mu   sync.RWMutex
	last *StatusEvent
}

func NewOrchestrator(cart Cart, payment PaymentGateway, delivery DeliveryBooker, cfg Config, log *zap.Logger, sinks ...StatusSink) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		cart:     cart,
		payment:  payment,
		delivery: delivery,
		sinks:    sinks,
		cfg:      cfg,
		validate: newValidator(),
		log:      log,
	}
}

// InFlight reports whether an attempt is running; the submit action should be disabled meanwhile
func (o *Orchestrator) InFlight() bool {
	return o.inFlight.Load()
}

// LastStatus is the most recent status shown in the checkout region
func (o *Orchestrator) LastStatus() (StatusEvent, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.last == nil {
		return StatusEvent{}, false
	}
	return *o.last, true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
