package checkout

import (
	"fmt"

	"github.com/boofmebel/boofmebel/internal/domain"
)

// attempt tracks the stage of a single submission
type attempt struct {
	id     string
	stage  domain.CheckoutStage
	result *Result
}

func newAttempt(id string) *attempt {
	return &attempt{
		id:     id,
		stage:  domain.CheckoutStageIdle,
		result: &Result{AttemptID: id, Stage: domain.CheckoutStageIdle},
	}
}

func (a *attempt) advance(to domain.CheckoutStage) error {
	if !domain.CanTransitionTo(a.stage, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.stage, to)
	}
	a.stage = to
	a.result.Stage = to
	return nil
}
