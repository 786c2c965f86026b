package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime/bus"
)

type Clients struct {
	Redis goredis.UniversalClient
	NATS  *nats.Conn
	// Bus is nil when BUS_DRIVER=none; engagement events are then dropped.
	Bus bus.Bus
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...", "bus_driver", cfg.BusDriver)

	var out Clients
	switch cfg.BusDriver {
	case BusMemory:
		out.Bus = bus.NewMemoryBus()

	case BusRedis:
		rdb := goredis.NewUniversalClient(&goredis.UniversalOptions{Addrs: []string{cfg.RedisAddr}})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("redis ping: %w", err)
		}
		b, err := bus.NewRedisBus(log, rdb, cfg.RedisChannel)
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("init redis bus: %w", err)
		}
		out.Redis, out.Bus = rdb, b

	case BusNATS:
		nc, err := nats.Connect(cfg.NATSURL,
			nats.Name("blog-backend"),
			nats.MaxReconnects(-1),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				if err != nil {
					log.Warn("nats disconnected", "error", err)
				}
			}),
			nats.ReconnectHandler(func(c *nats.Conn) {
				log.Info("nats reconnected", "url", c.ConnectedUrl())
			}),
		)
		if err != nil {
			return Clients{}, fmt.Errorf("nats connect: %w", err)
		}
		b, err := bus.NewNATSBus(log, nc, cfg.NATSSubject)
		if err != nil {
			nc.Close()
			return Clients{}, fmt.Errorf("init nats bus: %w", err)
		}
		out.NATS, out.Bus = nc, b
	}
	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
	if c.NATS != nil {
		c.NATS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
