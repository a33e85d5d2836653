package tracer

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// SubscriptionID uniquely identifies a session event subscription
type SubscriptionID string

// SubscribeResult is a registered subscription: the id used to cancel
// it and the channel delivering its events
type SubscribeResult struct {
	SubscriptionID SubscriptionID
	EventCh        chan *SessionEvent
}

type eventManager struct {
	subscriptionsLock sync.RWMutex
	subscriptions     map[SubscriptionID]*eventSubscription
	numSubscriptions  int64
	logger            hclog.Logger
}

func newEventManager(logger hclog.Logger) *eventManager {
	return &eventManager{
		logger:        logger.Named("event-manager"),
		subscriptions: make(map[SubscriptionID]*eventSubscription),
	}
}

// subscribe registers a new listener for session events
func (em *eventManager) subscribe(eventTypes []SessionEventType) *SubscribeResult {
	em.subscriptionsLock.Lock()
	defer em.subscriptionsLock.Unlock()

	id := SubscriptionID(uuid.New().String())
	subscription := &eventSubscription{
		eventTypes: eventTypes,
		outputCh:   make(chan *SessionEvent),
		doneCh:     make(chan struct{}),
		notifyCh:   make(chan struct{}, 1),
		eventStore: &eventQueue{},
	}

	em.subscriptions[id] = subscription
	atomic.AddInt64(&em.numSubscriptions, 1)

	em.logger.Debug("added new event subscription", "id", id)

	go subscription.runLoop()

	return &SubscribeResult{
		SubscriptionID: id,
		EventCh:        subscription.outputCh,
	}
}

// cancelSubscription stops the subscription with the given id
func (em *eventManager) cancelSubscription(id SubscriptionID) {
	em.subscriptionsLock.Lock()
	defer em.subscriptionsLock.Unlock()

	subscription, ok := em.subscriptions[id]
	if !ok {
		return
	}

	subscription.close()
	delete(em.subscriptions, id)
	atomic.AddInt64(&em.numSubscriptions, -1)

	em.logger.Debug("canceled event subscription", "id", id)
}

// close cancels all subscriptions
func (em *eventManager) close() {
	em.subscriptionsLock.Lock()
	defer em.subscriptionsLock.Unlock()

	for id, subscription := range em.subscriptions {
		subscription.close()
		delete(em.subscriptions, id)
	}

	atomic.StoreInt64(&em.numSubscriptions, 0)
}

// signalEvent notifies all interested subscribers
func (em *eventManager) signalEvent(event *SessionEvent) {
	if atomic.LoadInt64(&em.numSubscriptions) == 0 {
		return
	}

	em.subscriptionsLock.RLock()
	defer em.subscriptionsLock.RUnlock()

	for _, subscription := range em.subscriptions {
		subscription.pushEvent(event)
	}
}
