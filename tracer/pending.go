package tracer

// freedList collects records between their free event and the deferred
// aggregation pass. The list is intrusive, records link through their
// next field, so a push from inside the collector's critical section
// performs no allocation.
type freedList struct {
	head *allocationRecord
}

// push prepends the record to the list
func (l *freedList) push(record *allocationRecord) {
	record.live = false
	record.next = l.head
	l.head = record
}

// take detaches and returns the whole list
func (l *freedList) take() *allocationRecord {
	head := l.head
	l.head = nil

	return head
}

// empty reports whether no records are awaiting aggregation
func (l *freedList) empty() bool {
	return l.head == nil
}
