package push

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/biponi/notify/internal/domain"
	"github.com/biponi/notify/internal/logging"
)

// Sink is the slice of the notification store the loop feeds.
type Sink interface {
	AddPushed(n domain.Notification)
	SetPushToken(token string)
}

const (
	initialBackoff = time.Second
	maxBackoff     = time.Minute
)

// Loop is the supervised re-arm loop over the transport's one-shot
// await primitive. The transport resolves once per message, so the loop
// re-invokes it after every resolution, tolerates failures with capped
// exponential backoff, and checks cancellation each iteration.
type Loop struct {
	transport Transport
	sink      Sink
	logger    logging.Logger
}

// NewLoop creates a push loop feeding the given sink.
func NewLoop(transport Transport, sink Sink, logger logging.Logger) *Loop {
	if logger == nil {
		logger = logging.Noop()
	}
	return &Loop{transport: transport, sink: sink, logger: logger}
}

// Run drives the loop until ctx is cancelled. It returns the initial
// registration token result immediately via the sink; an empty token
// (push unavailable) ends the loop without error.
func (l *Loop) Run(ctx context.Context) error {
	token, err := l.transport.Connect(ctx)
	if err != nil {
		return err
	}
	l.sink.SetPushToken(token)
	if token == "" {
		l.logger.Info("push unavailable, loop not started")
		return nil
	}

	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		payload, err := l.transport.AwaitMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isTimeout(err) {
				// Quiet period, not a failure: re-arm immediately.
				if _, rerr := l.transport.Connect(ctx); rerr != nil {
					l.logger.Warn("push reconnect failed", "error", rerr)
				}
				continue
			}
			l.logger.Warn("push await failed, retrying", "error", err, "backoff", backoff.String())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			if _, rerr := l.transport.Connect(ctx); rerr != nil {
				l.logger.Warn("push reconnect failed", "error", rerr)
			}
			continue
		}

		backoff = initialBackoff
		l.sink.AddPushed(payload.ToNotification(time.Now()))
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
