package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gorilla/websocket"
)

type countingUnsubscriber struct {
	calls int32
}

func (u *countingUnsubscriber) Unsubscribe() error {
	atomic.AddInt32(&u.calls, 1)
	return nil
}

func TestTrendsClientClose_ConcurrentTeardown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}

	sub := &countingUnsubscriber{}
	client := &trendsClient{
		conn: conn,
		send: make(chan []byte, 16),
		sub:  sub,
		log:  quietLogger(),
	}

	// Both pumps defer close on the way out and exit together when the
	// peer disconnects; teardown must stay safe under that overlap.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client.close()
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&sub.calls); got != 1 {
		t.Errorf("unsubscribe calls = %d, want exactly 1", got)
	}
}

func TestTrendsWebSocketHandler_NoEventBus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/trends", nil)

	TrendsWebSocketHandler(nil, "trend.keywords", quietLogger())(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
