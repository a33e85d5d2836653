package tracer

import (
	"context"
	mathRand "math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objtrace/objtrace/helper/tests"
	"github.com/objtrace/objtrace/host"
	"github.com/objtrace/objtrace/types"
)

func shuffleSessionEvents(
	supportedTypes []SessionEventType,
	count int,
	numInvalid int,
) []*SessionEvent {
	if count == 0 || len(supportedTypes) == 0 {
		return []*SessionEvent{}
	}

	if numInvalid > count {
		numInvalid = count
	}

	allEvents := []SessionEventType{
		SessionStarted,
		SessionStopped,
		DrainCompleted,
		SnapshotTaken,
	}

	tempSubscription := &eventSubscription{eventTypes: supportedTypes}

	randomEventType := func(supported bool) SessionEventType {
		for {
			randType := allEvents[mathRand.Intn(len(allEvents))]
			if tempSubscription.eventSupported(randType) == supported {
				return randType
			}
		}
	}

	events := make([]*SessionEvent, 0)

	// Fill in the unsupported events first
	for invalidFilled := 0; invalidFilled < numInvalid; invalidFilled++ {
		events = append(events, &SessionEvent{
			Type: randomEventType(false),
		})
	}

	// Fill in the supported events
	for validFilled := 0; validFilled < count-numInvalid; validFilled++ {
		events = append(events, &SessionEvent{
			Type: randomEventType(true),
		})
	}

	// Shuffle the events
	mathRand.Shuffle(len(events), func(i, j int) {
		events[i], events[j] = events[j], events[i]
	})

	return events
}

func TestEventSubscription_ProcessedEvents(t *testing.T) {
	supportedEvents := []SessionEventType{
		SessionStarted,
		SessionStopped,
	}

	testTable := []struct {
		name              string
		events            []*SessionEvent
		expectedProcessed int
	}{
		{
			"All supported events processed",
			shuffleSessionEvents(supportedEvents, 10, 0),
			10,
		},
		{
			"All unsupported events not processed",
			shuffleSessionEvents(supportedEvents, 10, 10),
			0,
		},
		{
			"Mixed events processed",
			shuffleSessionEvents(supportedEvents, 10, 6),
			4,
		},
	}

	for _, testCase := range testTable {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			subscription := &eventSubscription{
				eventTypes: supportedEvents,
				outputCh:   make(chan *SessionEvent, len(testCase.events)),
				doneCh:     make(chan struct{}),
				notifyCh:   make(chan struct{}, 1),
				eventStore: &eventQueue{},
			}

			go subscription.runLoop()

			// Set the event listener
			processed := int64(0)

			go func() {
				for range subscription.outputCh {
					atomic.AddInt64(&processed, 1)
				}
			}()

			// Fire off the events
			var wg sync.WaitGroup

			for _, event := range testCase.events {
				wg.Add(1)

				go func(event *SessionEvent) {
					defer wg.Done()

					subscription.pushEvent(event)
				}(event)
			}

			wg.Wait()

			eventWaitCtx, eventWaitFn := context.WithTimeout(context.Background(), time.Second*5)
			defer eventWaitFn()

			if _, err := tests.RetryUntilTimeout(eventWaitCtx, func() (interface{}, bool) {
				return nil, atomic.LoadInt64(&processed) < int64(testCase.expectedProcessed)
			}); err != nil {
				t.Fatalf("Unable to wait for events to be processed, %v", err)
			}

			subscription.close()

			assert.Equal(t, int64(testCase.expectedProcessed), atomic.LoadInt64(&processed))
		})
	}
}

func TestEventSubscription_EventSupported(t *testing.T) {
	t.Parallel()

	supportedEvents := []SessionEventType{
		SessionStarted,
		SnapshotTaken,
	}

	subscription := &eventSubscription{
		eventTypes: supportedEvents,
	}

	testTable := []struct {
		name      string
		events    []SessionEventType
		supported bool
	}{
		{
			"Supported events processed",
			supportedEvents,
			true,
		},
		{
			"Unsupported events not processed",
			[]SessionEventType{
				SessionStopped,
				DrainCompleted,
			},
			false,
		},
	}

	for _, testCase := range testTable {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			for _, eventType := range testCase.events {
				assert.Equal(t, testCase.supported, subscription.eventSupported(eventType))
			}
		})
	}
}

func TestEventManager_SubscribeCancel(t *testing.T) {
	t.Parallel()

	em := newEventManager(hclog.NewNullLogger())

	result := em.subscribe([]SessionEventType{SessionStarted})
	require.NotNil(t, result)
	assert.EqualValues(t, 1, atomic.LoadInt64(&em.numSubscriptions))

	em.signalEvent(&SessionEvent{Type: SessionStarted})

	select {
	case ev := <-result.EventCh:
		assert.Equal(t, SessionStarted, ev.Type)
	case <-time.After(time.Second * 5):
		t.Fatal("timed out waiting for the subscribed event")
	}

	em.cancelSubscription(result.SubscriptionID)
	assert.EqualValues(t, 0, atomic.LoadInt64(&em.numSubscriptions))

	// the subscriber channel closes once the run loop winds down
	_, ok := <-result.EventCh
	assert.False(t, ok)
}

func TestTracer_SessionEventFlow(t *testing.T) {
	t.Parallel()

	sim := host.NewSimRuntime()

	tracer, err := NewTracer(hclog.NewNullLogger(), sim, nil)
	require.NoError(t, err)

	t.Cleanup(tracer.Close)

	subscription := tracer.Subscribe(
		SessionStarted,
		SessionStopped,
		DrainCompleted,
		SnapshotTaken,
	)

	require.NoError(t, tracer.Start())

	id := sim.Alloc(types.TagString, "String", "a.rb", 1)
	sim.Collect()
	require.True(t, sim.Free(id))
	sim.RunDeferred()

	_, err = tracer.Stop()
	require.NoError(t, err)

	received := make([]*SessionEvent, 0, 4)

	for len(received) < 4 {
		select {
		case ev := <-subscription.EventCh:
			received = append(received, ev)
		case <-time.After(time.Second * 5):
			t.Fatalf("timed out after %d events", len(received))
		}
	}

	assert.Equal(t, SessionStarted, received[0].Type)
	assert.Equal(t, DrainCompleted, received[1].Type)
	assert.Equal(t, 1, received[1].Drained)
	assert.Equal(t, SessionStopped, received[2].Type)
	assert.Equal(t, SnapshotTaken, received[3].Type)
	assert.Equal(t, 1, received[3].Rows)
}
