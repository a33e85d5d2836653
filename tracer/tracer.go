package tracer

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/objtrace/objtrace/host"
	"github.com/objtrace/objtrace/types"
)

// Session state errors
var (
	// ErrAlreadyRunning is returned by Start while a session is active
	ErrAlreadyRunning = errors.New("tracing session already running")

	// ErrNotRunning is returned by Stop while no session is active
	ErrNotRunning = errors.New("tracing session not running")

	// ErrTracingActive is returned by Configure while a session is active
	ErrTracingActive = errors.New("cannot change configuration while tracing is active")

	// ErrUnknownAttribute is returned by Configure for an unsupported
	// attribute name
	ErrUnknownAttribute = errors.New("unsupported key attribute")
)

// Config is the tracer construction configuration
type Config struct {
	// Attributes preselects the grouping attributes, exactly as a
	// Configure call would. Left empty, the first Start defaults the
	// selection to path and line.
	Attributes []string
}

// Tracer aggregates object-lifetime statistics between Start and Stop.
//
// The tracer follows the host's single-threaded cooperative model: the
// session methods and both runtime observers must run on the host's
// thread of control, so the working tables are deliberately unlocked.
// The free observer runs inside the collector's critical section and
// performs constant work only; all table mutation happens in the
// deferred drain. The session event subscriptions are the one
// goroutine-safe surface.
type Tracer struct {
	logger  hclog.Logger
	runtime host.Runtime

	interner *stringInterner
	objects  *objectRegistry
	table    *aggregateTable
	freed    freedList

	// keys is the configured grouping attribute selection
	keys attrSet

	running bool

	// hooks are created at the first Start and survive Stop,
	// later sessions re-enable them
	allocHook host.Hook
	freeHook  host.Hook

	eventManager *eventManager
}

// NewTracer creates an idle tracer attached to the given host runtime.
// A nil config leaves the attribute selection to the Start default.
func NewTracer(logger hclog.Logger, runtime host.Runtime, config *Config) (*Tracer, error) {
	logger = logger.Named("tracer")
	interner := newStringInterner()

	t := &Tracer{
		logger:       logger,
		runtime:      runtime,
		interner:     interner,
		objects:      newObjectRegistry(),
		table:        newAggregateTable(interner),
		eventManager: newEventManager(logger),
	}

	if config != nil && len(config.Attributes) > 0 {
		if err := t.Configure(config.Attributes...); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Start begins a tracing session. When no attribute selection has been
// configured, the session groups by path and line.
func (t *Tracer) Start() error {
	if t.running {
		return ErrAlreadyRunning
	}

	if t.keys == 0 {
		t.keys = attrPath | attrLine
	}

	if t.allocHook == nil {
		t.allocHook = t.runtime.AllocHook(t.onAlloc)
		t.freeHook = t.runtime.FreeHook(t.onFree)
	}

	t.allocHook.Enable()
	t.freeHook.Enable()

	t.running = true

	t.logger.Info("tracing session started", "attributes", t.keys.names())
	t.eventManager.signalEvent(&SessionEvent{Type: SessionStarted})

	return nil
}

// Stop ends the running session and returns its aggregated report.
// Objects still live contribute their age as of the stop.
func (t *Tracer) Stop() (*Report, error) {
	if !t.running {
		return nil, ErrNotRunning
	}

	t.allocHook.Disable()
	t.freeHook.Disable()

	t.running = false

	t.eventManager.signalEvent(&SessionEvent{Type: SessionStopped})

	report := t.snapshot()

	t.logger.Info("tracing session stopped", "rows", len(report.Rows))

	return report, nil
}

// Trace runs work inside its own tracing session, stopping the session
// on every exit path including panic unwinds, and returns the session
// report. Errors from the work and from the session stop are combined.
func (t *Tracer) Trace(work func() error) (*Report, error) {
	if err := t.Start(); err != nil {
		return nil, err
	}

	var (
		report *Report
		result *multierror.Error
	)

	func() {
		defer func() {
			var stopErr error

			report, stopErr = t.Stop()
			result = multierror.Append(result, stopErr)
		}()

		result = multierror.Append(result, work())
	}()

	return report, result.ErrorOrNil()
}

// Configure adds the named attributes to the grouping key selection.
// The whole request is validated before any of it is applied, and
// names already selected are accepted again without effect.
func (t *Tracer) Configure(attrs ...string) error {
	if t.running {
		return ErrTracingActive
	}

	set, err := parseAttrs(attrs)
	if err != nil {
		return err
	}

	t.keys |= set

	return nil
}

// Header returns the column names of the rows the current attribute
// selection produces: the configured attributes in key slot order,
// followed by the statistic names
func (t *Tracer) Header() []string {
	header := make([]string, 0, maxKeySlots+len(statNames))
	header = append(header, t.keys.names()...)
	header = append(header, statNames...)

	return header
}

// Running reports whether a session is active
func (t *Tracer) Running() bool {
	return t.running
}

// Subscribe registers a listener for the given session event types
func (t *Tracer) Subscribe(eventTypes ...SessionEventType) *SubscribeResult {
	return t.eventManager.subscribe(eventTypes)
}

// Unsubscribe cancels the subscription with the given id
func (t *Tracer) Unsubscribe(id SubscriptionID) {
	t.eventManager.cancelSubscription(id)
}

// Close cancels all event subscriptions. The tracer holds no other
// resources.
func (t *Tracer) Close() {
	t.eventManager.close()
}

// onAlloc is the allocation observer, called synchronously at every
// allocation while the session is active
func (t *Tracer) onAlloc(ev host.AllocEvent) {
	path := t.interner.intern(ev.Path)
	classPath := t.interner.intern(ev.ClassPath)

	record, ok := t.objects.get(ev.Object)
	if ok {
		// The host reused this identity without an observed free.
		// The stale record is overwritten in place and its partial
		// statistics are dropped.
		t.interner.release(record.path)
		t.interner.release(record.classPath)
	} else {
		record = &allocationRecord{}
	}

	record.object = ev.Object
	record.tag = ev.Tag
	record.class = ev.Class
	record.classPath = classPath
	record.path = path
	record.line = ev.Line
	record.generation = ev.Generation
	record.live = true
	record.next = nil

	t.objects.set(record)

	updateAllocationMetrics(t.objects.len(), t.interner.size())
}

// onFree is the free observer. It runs inside the collector's critical
// section: one constant-work list push plus at most one deferred-drain
// request, nothing else.
func (t *Tracer) onFree(id types.ObjectID) {
	record, ok := t.objects.take(id)
	if !ok {
		// allocated before the session started
		return
	}

	// an empty list means no drain is scheduled yet
	wasEmpty := t.freed.empty()
	t.freed.push(record)

	if wasEmpty {
		t.runtime.Defer(t.drain)
	}
}

// drain folds every record on the freed list into the aggregate table.
// It runs as the deferred phase of the free path, outside the critical
// section, and is also called directly when a snapshot flushes the
// tables. Draining an empty list is a no-op.
func (t *Tracer) drain() {
	head := t.freed.take()
	if head == nil {
		return
	}

	cycles := t.runtime.Cycles()
	drained := 0

	for record := head; record != nil; {
		next := record.next

		t.table.fold(t.makeKey(record), cycles-record.generation)

		t.interner.release(record.path)
		t.interner.release(record.classPath)

		record.next = nil
		record = next
		drained++
	}

	if t.logger.IsDebug() {
		t.logger.Debug("drained freed records", "count", drained, "rows", t.table.len())
	}

	updateDrainMetrics(drained, t.objects.len(), t.table.len())

	t.eventManager.signalEvent(&SessionEvent{Type: DrainCompleted, Drained: drained})
}

// makeKey builds the record's composite key from the configured
// attributes, in fixed slot order
func (t *Tracer) makeKey(record *allocationRecord) aggregateKey {
	var key aggregateKey

	if t.keys.has(attrPath) {
		key.slots[key.n].str = record.path
		key.n++
	}

	if t.keys.has(attrLine) {
		key.slots[key.n].num = uint64(record.line)
		key.n++
	}

	if t.keys.has(attrType) {
		key.slots[key.n].num = uint64(record.tag)
		key.n++
	}

	if t.keys.has(attrClass) {
		key.slots[key.n].str = record.classPath
		key.n++
	}

	return key
}

// snapshot drains everything still tracked, materializes the aggregate
// table into sorted rows and resets all working state, leaving the
// tracer ready for a fresh session
func (t *Tracer) snapshot() *Report {
	// objects that never saw a free event contribute their age as of now
	t.objects.each(func(record *allocationRecord) {
		t.freed.push(record)
	})
	t.objects.reset()

	t.drain()

	report := &Report{
		Attributes: t.keys.names(),
		Rows:       t.materializeRows(),
	}

	t.table.releaseKeys()
	t.table.reset()

	if leftover := t.interner.size(); leftover > 0 {
		t.logger.Warn("string pool not empty after snapshot", "strings", leftover)
	}

	t.interner.reset()

	updateSnapshotMetrics(len(report.Rows))

	t.eventManager.signalEvent(&SessionEvent{Type: SnapshotTaken, Rows: len(report.Rows)})

	return report
}

// materializeRows reads the aggregate table out into report rows,
// projecting each key's slots back onto the configured attributes
func (t *Tracer) materializeRows() []Row {
	rows := make([]Row, 0, t.table.len())

	t.table.each(func(key aggregateKey, value *aggregateValue) {
		row := Row{
			Count:    value.count,
			TotalAge: value.totalAge,
			MinAge:   value.minAge,
			MaxAge:   value.maxAge,
		}

		slot := 0

		for _, attr := range keyAttrOrder {
			if !t.keys.has(attr) {
				continue
			}

			switch attr {
			case attrPath:
				if key.slots[slot].str != nil {
					row.Path = key.slots[slot].str.value
				}
			case attrLine:
				row.Line = int(key.slots[slot].num)
			case attrType:
				row.Tag = types.TypeTag(key.slots[slot].num)
			case attrClass:
				if key.slots[slot].str != nil {
					row.ClassPath = key.slots[slot].str.value
				}
			}

			slot++
		}

		rows = append(rows, row)
	})

	sortRows(rows)

	return rows
}
