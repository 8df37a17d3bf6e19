package progress

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	events []Event
}

func (c *captureSink) Publish(e Event) { c.events = append(c.events, e) }

func TestMultiFansOut(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	m := Multi{a, b}

	m.Publish(Event{Stage: "fetch", Percent: 10})

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, "fetch", a.events[0].Stage)
}

func TestDiscardAcceptsEvents(t *testing.T) {
	Discard{}.Publish(Event{Stage: "noop"})
}

func dialBroadcaster(t *testing.T, b *Broadcaster) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var e Event
	require.NoError(t, json.Unmarshal(payload, &e))
	return e
}

func TestBroadcasterStreamsEvents(t *testing.T) {
	b := NewBroadcaster()
	conn := dialBroadcaster(t, b)

	// Give the server a moment to register the subscriber.
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.subs) == 1
	}, 2*time.Second, 10*time.Millisecond)

	b.Publish(Event{Stage: "elements", Message: "processing", Percent: 42.5})

	e := readEvent(t, conn)
	assert.Equal(t, "elements", e.Stage)
	assert.Equal(t, "processing", e.Message)
	assert.Equal(t, 42.5, e.Percent)
}

func TestBroadcasterReplaysLastEventOnConnect(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(Event{Stage: "save", Percent: 100})

	conn := dialBroadcaster(t, b)
	e := readEvent(t, conn)
	assert.Equal(t, "save", e.Stage)
	assert.Equal(t, 100.0, e.Percent)
}

func TestBroadcasterSurvivesPublishWithoutSubscribers(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(Event{Stage: "fetch"})
	b.Publish(Event{Stage: "ground"})
}
