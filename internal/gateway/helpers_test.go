package gateway

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/flemzord/tgrelay/internal/telegram"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSender records requests and returns a canned result.
type fakeSender struct {
	mu   sync.Mutex
	reqs []telegram.SendMessageRequest
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, req telegram.SendMessageRequest) (*telegram.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &telegram.Message{MessageID: 7, Text: req.Text, Chat: telegram.Chat{ID: 42, Type: "private"}}, nil
}

func (f *fakeSender) requests() []telegram.SendMessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]telegram.SendMessageRequest(nil), f.reqs...)
}
