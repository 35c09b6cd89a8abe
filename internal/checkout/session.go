package checkout

import (
	"time"

	"github.com/Skotchmaster/biblion/internal/models"
)

// Session is the in-memory state of one user's checkout.
type Session struct {
	Step        Step                    `json:"step"`
	Shipping    *models.ShippingAddress `json:"shipping,omitempty"`
	CardLast4   string                  `json:"cardLast4,omitempty"`
	OrderNumber string                  `json:"orderNumber,omitempty"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func NewSession(now time.Time) *Session {
	return &Session{Step: StepCart, UpdatedAt: now}
}

func (s *Session) move(to Step, now time.Time) error {
	if err := transition(s.Step, to); err != nil {
		return err
	}
	s.Step = to
	s.UpdatedAt = now
	return nil
}

// Begin leaves the cart review step. The caller checks the cart is not empty.
func (s *Session) Begin(now time.Time) error {
	return s.move(StepShipping, now)
}

func (s *Session) SubmitShipping(addr models.ShippingAddress, now time.Time) error {
	if err := ValidateShipping(&addr); err != nil {
		return err
	}
	if err := transition(s.Step, StepPayment); err != nil {
		return err
	}
	s.Shipping = &addr
	return s.move(StepPayment, now)
}

func (s *Session) Confirm(orderNumber, cardLast4 string, now time.Time) error {
	if err := s.move(StepConfirmation, now); err != nil {
		return err
	}
	s.OrderNumber = orderNumber
	s.CardLast4 = cardLast4
	return nil
}

func (s *Session) Back(now time.Time) error {
	prev := Previous(s.Step)
	if prev == "" {
		return transition(s.Step, s.Step)
	}
	return s.move(prev, now)
}
