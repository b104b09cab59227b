package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("empty cart")
	ErrInvalidForm        = errors.New("invalid checkout form")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrCheckoutFailed     = errors.New("checkout failed")
	ErrTimedOut           = errors.New("timed out")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrIllegalTransition  = errors.New("illegal transition of checkout stage")
)

// statusMessage is the user-facing text for a failed attempt
func statusMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "Корзина пуста"
	case errors.Is(err, ErrInvalidForm):
		return "Заполните имя, телефон и адрес доставки"
	case errors.Is(err, ErrPaymentDeclined):
		return "Оплата не прошла. Попробуйте ещё раз."
	case errors.Is(err, ErrTimedOut):
		return "Сервис не ответил вовремя. Попробуйте ещё раз."
	default:
		return "Не удалось оформить заказ. Попробуйте ещё раз."
	}
}
