package domain

type CheckoutStage string

const (
	CheckoutStageIdle                    CheckoutStage = "IDLE"
	CheckoutStageValidating              CheckoutStage = "VALIDATING"
	CheckoutStageAwaitingPayment         CheckoutStage = "AWAITING_PAYMENT"
	CheckoutStageAwaitingDeliveryBooking CheckoutStage = "AWAITING_DELIVERY_BOOKING"
	CheckoutStageSucceeded               CheckoutStage = "SUCCEEDED"
	CheckoutStageFailed                  CheckoutStage = "FAILED"
)

var checkoutTransitions = map[CheckoutStage][]CheckoutStage{
	CheckoutStageIdle:                    {CheckoutStageValidating},
	CheckoutStageValidating:              {CheckoutStageAwaitingPayment, CheckoutStageFailed},
	CheckoutStageAwaitingPayment:         {CheckoutStageAwaitingDeliveryBooking, CheckoutStageFailed},
	CheckoutStageAwaitingDeliveryBooking: {CheckoutStageSucceeded, CheckoutStageFailed},
}

func (s CheckoutStage) IsTerminal() bool {
	return s == CheckoutStageSucceeded || s == CheckoutStageFailed
}

// String representation (for logging)
func (s CheckoutStage) String() string {
	return string(s)
}

// CanTransitionTo reports whether the checkout state machine allows moving from one stage to another
func CanTransitionTo(from, to CheckoutStage) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
