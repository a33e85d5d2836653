package tracer

import (
	"sync"
)

type eventQueue struct {
	events []*SessionEvent
	sync.Mutex
}

func (eq *eventQueue) push(event *SessionEvent) {
	eq.Lock()
	defer eq.Unlock()

	eq.events = append(eq.events, event)
}

func (eq *eventQueue) pop() *SessionEvent {
	eq.Lock()
	defer eq.Unlock()

	if len(eq.events) == 0 {
		return nil
	}

	event := eq.events[0]
	eq.events = eq.events[1:]

	return event
}
