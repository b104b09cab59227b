package storefront

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/cart"
	"github.com/boofmebel/boofmebel/internal/catalog"
	"github.com/boofmebel/boofmebel/internal/checkout"
	"github.com/boofmebel/boofmebel/internal/delivery"
	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/preferences"
	"github.com/boofmebel/boofmebel/internal/reviews"
	"github.com/boofmebel/boofmebel/internal/simulated"
	"github.com/boofmebel/boofmebel/internal/storage"
	"github.com/boofmebel/boofmebel/pkg/circuitbreaker"
)

// Options describe one storefront profile. Nil collaborators get simulated ones.
type Options struct {
	Store    storage.Store
	Catalog  *catalog.Catalog
	CartKey  string
	ThemeKey string

	Checkout checkout.Config
	Breaker  *circuitbreaker.Config // nil disables breakers

	Payment checkout.PaymentGateway
	Booker  checkout.DeliveryBooker
	Quotes  delivery.QuoteProvider
	Sinks   []checkout.StatusSink
	Closers []func() error
	Log     *zap.Logger
}

// App is the owned application state of one storefront profile
type App struct {
	Catalog  *catalog.Catalog
	Cart     *cart.Ledger
	Checkout *checkout.Orchestrator
	Quotes   *delivery.Estimator
	Reviews  *reviews.Board
	Theme    *preferences.ThemePreference

	closers []func() error
	log     *zap.Logger
}

// New assembles the application state and reads the persisted cart and theme
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, errors.New("storefront: store is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("storefront: catalog is required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	payment := opts.Payment
	if payment == nil {
		payment = simulated.NewPayment(simulated.DefaultPaymentDelay, simulated.AlwaysPaid{}, log.Named("payment"))
	}
	booker := opts.Booker
	if booker == nil {
		booker = simulated.NewBooker(simulated.DefaultBookingDelay, log.Named("booking"))
	}
	quotes := opts.Quotes
	if quotes == nil {
		quotes = simulated.NewQuoter(simulated.DefaultQuoteDelay)
	}
	if opts.Breaker != nil {
		payment = checkout.WithPaymentBreaker(payment,
			circuitbreaker.New[domain.PaymentReceipt]("payment", *opts.Breaker, log))
		booker = checkout.WithBookingBreaker(booker,
			circuitbreaker.New[domain.DeliveryBooking]("delivery-booking", *opts.Breaker, log))
	}

	ledger := cart.NewLedger(opts.Store, opts.CartKey, log.Named("cart"))
	ledger.Load(ctx)

	theme := preferences.NewThemePreference(opts.Store, opts.ThemeKey, log.Named("preferences"))
	theme.Load(ctx)

	app := &App{
		Catalog:  opts.Catalog,
		Cart:     ledger,
		Checkout: checkout.NewOrchestrator(ledger, payment, booker, opts.Checkout, log.Named("checkout"), opts.Sinks...),
		Quotes:   delivery.NewEstimator(quotes, ledger, log.Named("delivery"), delivery.WithTimeout(opts.Checkout.StageTimeout)),
		Reviews:  reviews.NewBoard(catalog.GlobalReviews, opts.Catalog.Reviews(), log.Named("reviews")),
		Theme:    theme,
		closers:  opts.Closers,
		log:      log,
	}

	log.Info("storefront ready",
		zap.Int("products", len(opts.Catalog.All())),
		zap.Int("cart_items", ledger.Len()),
		zap.String("theme", string(theme.Theme())))
	return app, nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
