package checkout

import (
	"errors"
	"fmt"
)

type Step string

const (
	StepCart         Step = "cart"
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var ErrInvalidTransition = errors.New("invalid checkout transition")

var validNext = map[Step]map[Step]bool{
	StepCart:         {StepShipping: true},
	StepShipping:     {StepPayment: true, StepCart: true},
	StepPayment:      {StepConfirmation: true, StepShipping: true},
	StepConfirmation: {},
}

func CanTransition(from, to Step) bool {
	return validNext[from][to]
}

// Previous is the back-navigation target, empty when there is none.
func Previous(s Step) Step {
	switch s {
	case StepShipping:
		return StepCart
	case StepPayment:
		return StepShipping
	}
	return ""
}

func transition(from, to Step) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
