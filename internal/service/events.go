package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/biblion/pkg/logging"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key, eventType string, payload any) error
}

// publish never fails the caller. It outlives request cancellation but not the timeout.
func publish(ctx context.Context, p Publisher, topic, key, eventType string, payload any) {
	if p == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(pctx, topic, key, eventType, payload); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			"topic", topic, "event", eventType, "key", key, "error", err)
	}
}

func nowOr(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
