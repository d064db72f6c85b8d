package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/gorilla/websocket"
)

func TestRankStreamDeliversEvents(t *testing.T) {
	defer leaktest.CheckTimeout(t, 3*time.Second)()

	s := newTestServer(t)
	srv := httptest.NewServer(http.HandlerFunc(s.RankStreamHandler))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	// the handler subscribes asynchronously; wait for the subscription
	b := s.Broker.(*Broker)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		b.mu.Lock()
		n := len(b.subs[TopicRankings])
		b.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	want := Event{Type: "ranking.completed", Data: map[string]any{"runId": "run-42"}}
	s.Broker.Publish(TopicRankings, want)

	got := Event{}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "ranking.completed" {
		t.Fatalf("no event received, got %+v", got)
	}
	if got.Data["runId"] != "run-42" {
		t.Fatalf("bad payload: %+v", got.Data)
	}
}
