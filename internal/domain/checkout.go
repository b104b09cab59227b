package domain

import "time"

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// CheckoutForm is the contact and address data submitted with a checkout
type CheckoutForm struct {
	Name    string        `json:"name" validate:"required"`
	Phone   string        `json:"phone" validate:"required"`
	Email   string        `json:"email" validate:"omitempty,email"`
	Address string        `json:"address" validate:"required"`
	Comment string        `json:"comment"`
	Pay     PaymentMethod `json:"pay" validate:"omitempty,oneof=card cash"`
}

// CheckoutPayload is built at submission time and never persisted
type CheckoutPayload struct {
	Name     string        `json:"name"`
	Phone    string        `json:"phone"`
	Email    string        `json:"email"`
	Address  string        `json:"address"`
	Comment  string        `json:"comment"`
	Pay      PaymentMethod `json:"pay"`
	Items    []LineItem    `json:"items"`
	Total    int64         `json:"total"`
	Captured time.Time     `json:"captured_at"`
}

const PaymentStatusPaid = "paid"

type PaymentReceipt struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
}

func (r PaymentReceipt) Paid() bool {
	return r.Status == PaymentStatusPaid
}

type DeliveryBooking struct {
	ID       int    `json:"id"`
	ETA      string `json:"eta"`
	Tracking string `json:"tracking"`
}

type Quote struct {
	Price   int64  `json:"price"`
	ETA     string `json:"eta"`
	Address string `json:"address"`
}
