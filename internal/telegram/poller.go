package telegram

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	maxConsecutivePollingErrors = 5
	errorPauseDuration          = 30 * time.Second
)

// Handler receives each update in order.
type Handler func(ctx context.Context, update Update)

// Poller long-polls getUpdates until its context is cancelled.
type Poller struct {
	client  *Client
	handle  Handler
	logger  *slog.Logger
	timeout int

	// pause is how long to back off after too many consecutive errors.
	pause time.Duration
}

// NewPoller creates a Poller. timeout is the getUpdates long-poll timeout in
// seconds; handle may be nil to just acknowledge updates.
func NewPoller(client *Client, handle Handler, logger *slog.Logger, timeout int) *Poller {
	if handle == nil {
		handle = func(context.Context, Update) {}
	}
	return &Poller{
		client:  client,
		handle:  handle,
		logger:  logger,
		timeout: timeout,
		pause:   errorPauseDuration,
	}
}

// Run polls until ctx is done and then returns nil.
func (p *Poller) Run(ctx context.Context) error {
	var offset int
	var consecutiveErrors int

	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := p.client.GetUpdates(ctx, GetUpdatesRequest{
			Offset:  offset,
			Timeout: p.timeout,
		})
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			consecutiveErrors++
			p.logger.Error("polling getUpdates failed",
				"error", err,
				"consecutive_errors", consecutiveErrors,
			)
			if consecutiveErrors >= maxConsecutivePollingErrors {
				p.logger.Warn("polling paused after consecutive errors", "pause", p.pause)
				timer := time.NewTimer(p.pause)
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil
				case <-timer.C:
				}
				consecutiveErrors = 0
			}
			continue
		}
		consecutiveErrors = 0

		for _, update := range updates {
			offset = update.UpdateID + 1
			p.handle(ctx, update)
		}
	}
}
