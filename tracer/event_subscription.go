package tracer

// eventSubscription is a single event-stream consumer
type eventSubscription struct {
	// eventTypes is the list of subscribed event types
	eventTypes []SessionEventType

	// outputCh is the update channel for the subscriber
	outputCh chan *SessionEvent

	// doneCh signals that the subscription is terminated
	doneCh chan struct{}

	// notifyCh wakes the run loop when an event has been queued
	notifyCh chan struct{}

	// eventStore buffers events between the producer and the run loop
	eventStore *eventQueue
}

// eventSupported checks if the event type is subscribed to
func (es *eventSubscription) eventSupported(eventType SessionEventType) bool {
	for _, supported := range es.eventTypes {
		if supported == eventType {
			return true
		}
	}

	return false
}

// close stops the subscription's run loop
func (es *eventSubscription) close() {
	close(es.doneCh)
}

// pushEvent queues the event for delivery and wakes the run loop.
// Events of unsupported types are dropped. Never blocks.
func (es *eventSubscription) pushEvent(event *SessionEvent) {
	if !es.eventSupported(event.Type) {
		return
	}

	es.eventStore.push(event)

	select {
	case es.notifyCh <- struct{}{}:
	default:
	}
}

// runLoop delivers queued events to the subscriber until closed
func (es *eventSubscription) runLoop() {
	for {
		select {
		case <-es.doneCh:
			close(es.outputCh)

			return
		case <-es.notifyCh:
			for {
				event := es.eventStore.pop()
				if event == nil {
					break
				}

				select {
				case es.outputCh <- event:
				case <-es.doneCh:
					close(es.outputCh)

					return
				}
			}
		}
	}
}
