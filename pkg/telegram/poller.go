package telegram

import (
	"context"
	"time"

	"github.com/popays/backend/pkg/logger"
)

// UpdateHandler processes one incoming update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd Update)
}

// Poller drives a long-polling loop against getUpdates and hands each
// update to the handler.
type Poller struct {
	client  *Client
	handler UpdateHandler
	timeout int // long-poll hold, seconds
	offset  int64
}

// NewPoller wires a client to an update handler.
func NewPoller(client *Client, handler UpdateHandler) *Poller {
	return &Poller{
		client:  client,
		handler: handler,
		timeout: 30,
	}
}

// Run polls until ctx is cancelled. Transient API errors are logged and
// retried after a short pause.
func (p *Poller) Run(ctx context.Context) error {
	logger.Info("telegram poller started")
	for {
		updates, err := p.client.GetUpdates(ctx, p.offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("telegram poller stopped")
				return ctx.Err()
			}
			logger.Error("telegram poll failed", "error", err)
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= p.offset {
				p.offset = upd.UpdateID + 1
			}
			p.dispatch(ctx, upd)
		}
	}
}

// dispatch isolates handler panics so one bad update cannot take down
// the polling loop.
func (p *Poller) dispatch(ctx context.Context, upd Update) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("update handler panicked", "update_id", upd.UpdateID, "panic", rec)
		}
	}()
	p.handler.HandleUpdate(ctx, upd)
}
