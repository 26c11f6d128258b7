package editor

// Scheduler defers work until after the current event has completed.
// The editing session is single-threaded and cooperative; deferred work
// runs between events, never concurrently with them.
type Scheduler interface {
	Defer(fn func())
}

// QueueScheduler queues deferred work and runs it when the event loop
// drains it. Each Drain call runs one deferred pass: work queued during
// the pass waits for the next one.
type QueueScheduler struct {
	queue []func()
}

func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{}
}

func (q *QueueScheduler) Defer(fn func()) {
	q.queue = append(q.queue, fn)
}

// Drain runs everything queued before the call.
func (q *QueueScheduler) Drain() {
	pending := q.queue
	q.queue = nil
	for _, fn := range pending {
		fn()
	}
}

// Pending reports how much deferred work is queued.
func (q *QueueScheduler) Pending() int {
	return len(q.queue)
}
