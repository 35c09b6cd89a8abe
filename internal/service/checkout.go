package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/biblion/internal/checkout"
	"github.com/Skotchmaster/biblion/internal/kv"
	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

const orderNumberAttempts = 3

type sessionEntry struct {
	mu sync.Mutex
	s  *checkout.Session
}

// CheckoutService drives the per-user checkout sessions. Sessions are kept in
// memory only; placed orders are stored through Repo.
type CheckoutService struct {
	Repo         *repo.GormRepo
	Events       Publisher
	Idempotency  kv.IdempotencyStore
	PaymentDelay time.Duration
	Now          func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
}

type CheckoutView struct {
	Session checkout.Session `json:"session"`
	Cart    *Cart            `json:"cart"`
	Totals  checkout.Totals  `json:"totals"`
	Order   *models.Order    `json:"order,omitempty"`
}

func (s *CheckoutService) entry(userID uuid.UUID) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = make(map[uuid.UUID]*sessionEntry)
	}
	e, ok := s.sessions[userID]
	if !ok {
		e = &sessionEntry{}
		s.sessions[userID] = e
	}
	return e
}

func stepErr(err error) error {
	switch {
	case errors.Is(err, checkout.ErrInvalidTransition):
		return fmt.Errorf("%v: %w", err, ErrInvalidStep)
	case errors.Is(err, checkout.ErrInvalidDetails):
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	return err
}

func totalsOf(items []models.CartItem) checkout.Totals {
	lines := make([]checkout.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, checkout.Line{Price: it.Book.Price, Quantity: it.Quantity})
	}
	return checkout.Compute(lines)
}

func (s *CheckoutService) view(ctx context.Context, userID uuid.UUID, sess *checkout.Session) (*CheckoutView, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	v := &CheckoutView{Session: *sess, Cart: newCart(items), Totals: totalsOf(items)}
	if sess.Step == checkout.StepConfirmation && sess.OrderNumber != "" {
		order, err := s.Repo.GetOrderByNumber(ctx, userID, sess.OrderNumber)
		if err != nil {
			return nil, lookupErr(err, "order")
		}
		v.Order = order
		v.Totals = checkout.Totals{
			Subtotal: order.Subtotal, Shipping: order.Shipping, Tax: order.Tax, Total: order.Total,
			FreeShipping: order.Shipping.IsZero(), FreeShippingRemaining: decimal.Zero,
		}
	}
	return v, nil
}

func (s *CheckoutService) Get(ctx context.Context, userID uuid.UUID) (*CheckoutView, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.s == nil {
		e.s = checkout.NewSession(nowOr(s.Now))
	}
	return s.view(ctx, userID, e.s)
}

// Start moves from the cart review to shipping. A finished checkout starts over.
func (s *CheckoutService) Start(ctx context.Context, userID uuid.UUID) (*CheckoutView, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	now := nowOr(s.Now)
	if e.s == nil || e.s.Step == checkout.StepConfirmation {
		e.s = checkout.NewSession(now)
	}

	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot check out: %w", ErrEmptyCart)
	}
	if err := e.s.Begin(now); err != nil {
		return nil, stepErr(err)
	}
	return s.view(ctx, userID, e.s)
}

func (s *CheckoutService) Shipping(ctx context.Context, userID uuid.UUID, addr models.ShippingAddress) (*CheckoutView, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s == nil {
		return nil, fmt.Errorf("checkout not started: %w", ErrInvalidStep)
	}
	if err := e.s.SubmitShipping(addr, nowOr(s.Now)); err != nil {
		return nil, stepErr(err)
	}
	return s.view(ctx, userID, e.s)
}

func (s *CheckoutService) Back(ctx context.Context, userID uuid.UUID) (*CheckoutView, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s == nil {
		return nil, fmt.Errorf("checkout not started: %w", ErrInvalidStep)
	}
	if err := e.s.Back(nowOr(s.Now)); err != nil {
		return nil, stepErr(err)
	}
	return s.view(ctx, userID, e.s)
}

func (s *CheckoutService) Reset(_ context.Context, userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *CheckoutService) wait(ctx context.Context) error {
	if s.PaymentDelay <= 0 {
		return nil
	}
	t := time.NewTimer(s.PaymentDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *CheckoutService) replay(ctx context.Context, userID uuid.UUID, key string) (*models.Order, error) {
	if key == "" || s.Idempotency == nil {
		return nil, nil
	}
	number, ok, err := s.Idempotency.Get(ctx, userID.String(), key)
	if err != nil {
		logging.FromContext(ctx).Warn("idempotency_lookup_failed", "error", err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	order, err := s.Repo.GetOrderByNumber(ctx, userID, number)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	return order, nil
}

func buildOrder(userID uuid.UUID, items []models.CartItem, ship models.ShippingAddress, last4 string) *models.Order {
	t := totalsOf(items)
	order := &models.Order{
		UserID:    userID,
		Status:    models.OrderStatusConfirmed,
		Subtotal:  t.Subtotal,
		Shipping:  t.Shipping,
		Tax:       t.Tax,
		Total:     t.Total,
		ShipTo:    ship,
		CardLast4: last4,
	}
	for _, it := range items {
		order.Items = append(order.Items, models.OrderItem{
			BookID:    it.BookID,
			Title:     it.Book.Title,
			Author:    it.Book.Author,
			UnitPrice: checkout.Money(it.Book.Price),
			Quantity:  it.Quantity,
			LineTotal: checkout.LineTotal(it.Book.Price, it.Quantity),
		})
	}
	return order
}

// Pay simulates the card payment and places the order. A repeated
// idempotency key returns the order placed the first time.
func (s *CheckoutService) Pay(ctx context.Context, userID uuid.UUID, p checkout.Payment, idemKey string) (*CheckoutView, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.pay", "user_id", userID)

	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if order, err := s.replay(ctx, userID, idemKey); err != nil {
		return nil, err
	} else if order != nil {
		l.Info("payment_replayed", "order_number", order.Number)
		sess := checkout.Session{Step: checkout.StepConfirmation, OrderNumber: order.Number, CardLast4: order.CardLast4, UpdatedAt: order.CreatedAt}
		return s.view(ctx, userID, &sess)
	}

	if e.s == nil || e.s.Step != checkout.StepPayment {
		return nil, fmt.Errorf("payment is only accepted at the payment step: %w", ErrInvalidStep)
	}
	if err := checkout.ValidatePayment(&p); err != nil {
		return nil, stepErr(err)
	}

	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot pay for an empty cart: %w", ErrEmptyCart)
	}

	if err := s.wait(ctx); err != nil {
		l.Warn("payment_aborted", "reason", "request cancelled", "error", err)
		return nil, err
	}

	order := buildOrder(userID, items, *e.s.Shipping, p.Last4())
	now := nowOr(s.Now)
	for attempt := 0; ; attempt++ {
		order.Number = checkout.OrderNumber(now.Add(time.Duration(attempt) * time.Millisecond))
		err = s.Repo.PlaceOrder(ctx, order)
		if err == nil || !errors.Is(err, repo.ErrDuplicate) || attempt+1 == orderNumberAttempts {
			break
		}
		order.ID = uuid.Nil
	}
	if err != nil {
		l.Error("order_failed", "status", 500, "error", err)
		return nil, err
	}

	if err := e.s.Confirm(order.Number, order.CardLast4, now); err != nil {
		return nil, stepErr(err)
	}
	if idemKey != "" && s.Idempotency != nil {
		if err := s.Idempotency.Set(ctx, userID.String(), idemKey, order.Number, kv.TTLIdempotency); err != nil {
			l.Warn("idempotency_store_failed", "error", err)
		}
	}

	l.Info("order_placed", "order_number", order.Number, "total", order.Total.StringFixed(2))
	publish(ctx, s.Events, mykafka.TopicOrderEvents, order.Number, mykafka.EventOrderPlaced, map[string]any{
		"order_id":     order.ID,
		"order_number": order.Number,
		"user_id":      userID,
		"total":        order.Total.StringFixed(2),
		"items":        len(order.Items),
	})
	return s.view(ctx, userID, e.s)
}
