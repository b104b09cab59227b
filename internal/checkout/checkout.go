package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/pkg/logger"
)

// Submit runs one checkout attempt: validate the cart and form, charge, book delivery
// and clear the cart. Failed attempts return the result together with the cause.
// A submission made while another one is running is rejected with ErrCheckoutInProgress.
func (o *Orchestrator) Submit(ctx context.Context, form domain.CheckoutForm) (*Result, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInProgress
	}
	defer o.inFlight.Store(false)

	a := newAttempt(uuid.NewString())
	log := logger.WithContext(ctx, o.log).With(zap.String("attempt_id", a.id))

	if err := a.advance(domain.CheckoutStageValidating); err != nil {
		return a.result, err
	}

	items := o.cart.Items()
	if len(items) == 0 {
		return o.fail(ctx, log, a, ErrEmptyCart)
	}

	form = normalize(form)
	if err := o.validate.Struct(form); err != nil {
		return o.fail(ctx, log, a, fmt.Errorf("%w: %s", ErrInvalidForm, describe(err)))
	}

	payload := domain.CheckoutPayload{
		Name:     form.Name,
		Phone:    form.Phone,
		Email:    form.Email,
		Address:  form.Address,
		Comment:  form.Comment,
		Pay:      form.Pay,
		Items:    items,
		Total:    domain.ItemsTotal(items),
		Captured: time.Now(),
	}

	if err := a.advance(domain.CheckoutStageAwaitingPayment); err != nil {
		return a.result, err
	}
	log.Info("checkout processing", zap.Int("items", len(items)), zap.Int64("total", payload.Total))
	o.emit(ctx, a, domain.InfoStatus("Проверяем корзину и сумму..."), nil)

	if err := sleep(ctx, o.cfg.SettleDelay); err != nil {
		return o.fail(ctx, log, a, stageError(err))
	}

	receipt, err := o.processPayment(ctx, payload)
	if err != nil {
		return o.fail(ctx, log, a, err)
	}
	a.result.Payment = &receipt
	if !receipt.Paid() {
		return o.fail(ctx, log, a, fmt.Errorf("%w: status %q", ErrPaymentDeclined, receipt.Status))
	}

	if err := a.advance(domain.CheckoutStageAwaitingDeliveryBooking); err != nil {
		return a.result, err
	}
	log.Info("checkout paid", zap.String("transaction_id", receipt.TransactionID))
	o.emit(ctx, a, domain.InfoStatus("Оплата подтверждена, создаём доставку..."), nil)

	booking, err := o.bookDelivery(ctx, payload.Address, payload.Items)
	if err != nil {
		return o.fail(ctx, log, a, err)
	}

	return o.complete(ctx, log, a, booking)
}

func (o *Orchestrator) fail(ctx context.Context, log *zap.Logger, a *attempt, cause error) (*Result, error) {
	if err := a.advance(domain.CheckoutStageFailed); err != nil {
		return a.result, errors.Join(cause, err)
	}
	if errors.Is(cause, ErrEmptyCart) || errors.Is(cause, ErrInvalidForm) || errors.Is(cause, ErrPaymentDeclined) {
		log.Info("checkout rejected", zap.Error(cause))
	} else {
		log.Warn("checkout failed", zap.Error(cause))
	}
	o.emit(ctx, a, domain.ErrorStatus(statusMessage(cause)), nil)
	return a.result, cause
}

func (o *Orchestrator) emit(ctx context.Context, a *attempt, status domain.Status, booking *domain.DeliveryBooking) {
	event := StatusEvent{
		AttemptID: a.id,
		Stage:     a.stage,
		Status:    status,
		Booking:   booking,
		At:        time.Now(),
	}
	a.result.Status = status
	a.result.Events = append(a.result.Events, event)

	o.mu.Lock()
	o.last = &event
	o.mu.Unlock()

	for _, sink := range o.sinks {
		sink.Notify(ctx, event)
	}
}

func normalize(form domain.CheckoutForm) domain.CheckoutForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)
	form.Address = strings.TrimSpace(form.Address)
	form.Comment = strings.TrimSpace(form.Comment)
	return form
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return strings.Join(fields, ", ")
}
