// Package progress reports generation progress to interested listeners.
package progress

import "log"

// Event is one progress update during world generation.
type Event struct {
	Stage   string  `json:"stage"`
	Message string  `json:"message"`
	Percent float64 `json:"percent"`
}

// Sink receives progress events.
type Sink interface {
	Publish(Event)
}

// LogSink writes progress events to the standard logger.
type LogSink struct{}

func (LogSink) Publish(e Event) {
	log.Printf("[%5.1f%%] %s: %s", e.Percent, e.Stage, e.Message)
}

// Multi fans one event out to several sinks.
type Multi []Sink

func (m Multi) Publish(e Event) {
	for _, s := range m {
		s.Publish(e)
	}
}

// Discard drops all events.
type Discard struct{}

func (Discard) Publish(Event) {}
