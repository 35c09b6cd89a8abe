package mykafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TopicUserEvents     = "user_events"
	TopicCartEvents     = "cart_events"
	TopicWishlistEvents = "wishlist_events"
	TopicOrderEvents    = "order_events"
	TopicBookEvents     = "book_events"
)

const (
	EventUserRegistered  = "user_registered"
	EventUserLoggedIn    = "user_logged_in"
	EventCartItemAdded   = "cart_item_added"
	EventCartItemUpdated = "cart_item_updated"
	EventCartItemRemoved = "cart_item_removed"
	EventCartCleared     = "cart_cleared"
	EventWishlistAdded   = "wishlist_item_added"
	EventWishlistRemoved = "wishlist_item_removed"
	EventOrderPlaced     = "order_placed"
	EventBookUpdated     = "book_updated"
	EventSessionImported = "session_imported"
)

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

func NewEnvelope(producer, eventType string, payload any, now time.Time) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   now.UTC(),
		Producer:     producer,
		Payload:      raw,
	}, nil
}
