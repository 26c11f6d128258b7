package editor

import "testing"

func TestQueueSchedulerDrain(t *testing.T) {
	sched := NewQueueScheduler()

	ran := 0
	sched.Defer(func() { ran++ })
	sched.Defer(func() { ran++ })

	if sched.Pending() != 2 {
		t.Fatalf("Expected 2 pending, got %d", sched.Pending())
	}

	sched.Drain()
	if ran != 2 {
		t.Errorf("Expected 2 deferred functions to run, got %d", ran)
	}
	if sched.Pending() != 0 {
		t.Errorf("Expected empty queue after drain, got %d", sched.Pending())
	}
}

func TestQueueSchedulerWorkQueuedDuringDrainWaits(t *testing.T) {
	sched := NewQueueScheduler()

	nested := false
	sched.Defer(func() {
		sched.Defer(func() { nested = true })
	})

	sched.Drain()
	if nested {
		t.Fatal("Expected work queued during a drain to wait for the next pass")
	}
	if sched.Pending() != 1 {
		t.Fatalf("Expected 1 pending after first drain, got %d", sched.Pending())
	}

	sched.Drain()
	if !nested {
		t.Error("Expected second drain to run the nested work")
	}
}

func TestQueueSchedulerDrainEmpty(t *testing.T) {
	sched := NewQueueScheduler()
	sched.Drain() // no-op
	if sched.Pending() != 0 {
		t.Errorf("Expected 0 pending, got %d", sched.Pending())
	}
}
