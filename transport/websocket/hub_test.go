package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/gridpath/maze/service"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newClient(hub *Hub, topic string) *Client {
	return &Client{hub: hub, topic: topic, send: make(chan []byte, sendBufferSize)}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)
	require.NotNil(t, hub)
	assert.NotNil(t, hub.topics)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
	assert.NotNil(t, hub.done)
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := NewHub(quietLogger())
	a := newClient(hub, "reindeer")
	b := newClient(hub, "reindeer")

	hub.registerClient(a)
	hub.registerClient(b)
	assert.Len(t, hub.topics["reindeer"], 2)

	hub.unregisterClient(a)
	assert.Len(t, hub.topics["reindeer"], 1)
	_, open := <-a.send
	assert.False(t, open, "send channel should be closed")

	// A second unregister is a no-op.
	hub.unregisterClient(a)

	hub.unregisterClient(b)
	_, exists := hub.topics["reindeer"]
	assert.False(t, exists, "empty topic should be removed")
}

func TestHubBroadcastRouting(t *testing.T) {
	hub := NewHub(quietLogger())
	reindeer := newClient(hub, "reindeer")
	racetrack := newClient(hub, "racetrack")
	all := newClient(hub, AllTopics)
	hub.registerClient(reindeer)
	hub.registerClient(racetrack)
	hub.registerClient(all)

	hub.broadcastMessage(&Message{
		Topic:  "reindeer",
		Event:  EventRunCompleted,
		RunID:  "run-1",
		Report: &service.SolveReport{RunID: "run-1", PuzzleID: "reindeer"},
	})

	assert.Len(t, reindeer.send, 1)
	assert.Len(t, racetrack.send, 0)
	assert.Len(t, all.send, 1)

	var message Message
	require.NoError(t, json.Unmarshal(<-reindeer.send, &message))
	assert.Equal(t, "reindeer", message.Topic)
	assert.Equal(t, EventRunCompleted, message.Event)
	assert.Equal(t, "run-1", message.Report.RunID)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(quietLogger())
	slow := &Client{hub: hub, topic: "p", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{Topic: "p", Event: "ping"})

	_, exists := hub.topics["p"]
	assert.False(t, exists)
}

func dial(t *testing.T, hub *Hub, topic string) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("puzzle"))
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?puzzle=" + topic
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketRunBroadcast(t *testing.T) {
	hub := NewHub(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dial(t, hub, "bytefall")

	// Give time for registration
	time.Sleep(50 * time.Millisecond)

	cost := 22
	hub.BroadcastRun(&service.SolveReport{RunID: "abc", PuzzleID: "bytefall", Reachable: true, Cost: &cost})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var message Message
	require.NoError(t, json.Unmarshal(data, &message))
	assert.Equal(t, EventRunCompleted, message.Event)
	assert.Equal(t, "abc", message.RunID)
	require.NotNil(t, message.Report.Cost)
	assert.Equal(t, 22, *message.Report.Cost)
}

func TestWebSocketClosesOnShutdown(t *testing.T) {
	hub := NewHub(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := dial(t, hub, "")
	time.Sleep(50 * time.Millisecond)

	cancel()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection should close when the hub stops")

	// Publishing after shutdown must not block.
	published := make(chan struct{})
	go func() {
		hub.BroadcastEvent("x", "late", nil)
		close(published)
	}()
	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("BroadcastEvent blocked after shutdown")
	}
}
