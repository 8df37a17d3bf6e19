package progress

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Broadcaster pushes progress events to websocket subscribers, typically a
// map preview frontend watching a long-running generation.
type Broadcaster struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
	last *Event
}

type subscriber struct {
	out chan []byte
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Publish sends an event to every connected subscriber. Slow subscribers
// drop events rather than stalling generation.
func (b *Broadcaster) Publish(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}

	b.mu.Lock()
	b.last = &e
	for sub := range b.subs {
		select {
		case sub.out <- payload:
		default:
		}
	}
	b.mu.Unlock()
}

// Handler upgrades incoming connections and streams events until the client
// disconnects. The most recent event is replayed on connect.
func (b *Broadcaster) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sub := &subscriber{out: make(chan []byte, 64)}

		b.mu.Lock()
		b.subs[sub] = struct{}{}
		if b.last != nil {
			if payload, err := json.Marshal(*b.last); err == nil {
				sub.out <- payload
			}
		}
		b.mu.Unlock()

		defer func() {
			b.mu.Lock()
			delete(b.subs, sub)
			b.mu.Unlock()
		}()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case payload := <-sub.out:
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}
	}
}
