package bus

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
)

type natsBus struct {
	log     *logger.Logger
	nc      *nats.Conn
	subject string
	subs    []*nats.Subscription
}

// NewNATSBus publishes on subject through nc. Close drains nc.
func NewNATSBus(log *logger.Logger, nc *nats.Conn, subject string) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if nc == nil {
		return nil, fmt.Errorf("nats connection required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "blog.events"
	}
	return &natsBus{
		log:     log.With("service", "NATSEventBus"),
		nc:      nc,
		subject: subject,
	}, nil
}

func (b *natsBus) Publish(ctx context.Context, ev realtime.Event) error {
	raw, err := encode(ev)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.nc.Publish(b.subject, raw)
}

func (b *natsBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	sub, err := b.nc.Subscribe(b.subject, func(m *nats.Msg) {
		ev, err := decode(m.Data)
		if err != nil {
			b.log.Warn("bad nats event payload", "error", err)
			return
		}
		onEvent(ev)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}
	b.subs = append(b.subs, sub)
	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

func (b *natsBus) Close() error {
	if b.nc == nil || b.nc.IsClosed() {
		return nil
	}
	return b.nc.Drain()
}
