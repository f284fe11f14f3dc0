package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIndex(t *testing.T) {
	g := New(Config{}, &fakeSender{}, nil, discardLogger())
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "/api/message/send") {
		t.Error("index page does not reference the send route")
	}
}

func TestHealth(t *testing.T) {
	g := New(Config{BotName: "relay_bot"}, &fakeSender{}, nil, discardLogger())
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Bot != "relay_bot" {
		t.Errorf("health = %+v", resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	m.RecordSent()
	m.RecordUpdate()
	g := New(Config{}, &fakeSender{}, m, discardLogger())

	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{"tgrelay_messages_sent_total 1", "tgrelay_updates_received_total 1", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestSendRouteRejectsGet(t *testing.T) {
	g := New(Config{}, &fakeSender{}, nil, discardLogger())
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/message/send", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestStartStop(t *testing.T) {
	g := New(Config{Bind: "127.0.0.1:0"}, &fakeSender{}, nil, discardLogger())
	if err := g.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := g.Start(); err == nil {
		t.Error("second Start() should fail")
	}

	resp, err := http.Get("http://" + g.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.Stop(ctx); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
}

func TestStopBeforeStart(t *testing.T) {
	g := New(Config{}, &fakeSender{}, nil, discardLogger())
	if err := g.Stop(context.Background()); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
}

func TestStartBadAddress(t *testing.T) {
	g := New(Config{Bind: "not-an-address"}, &fakeSender{}, nil, discardLogger())
	if err := g.Start(); err == nil {
		t.Fatal("Start() should fail for an invalid bind address")
	}
}
