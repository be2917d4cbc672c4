package texasholdem

import "time"

// Task is deferred work that can be cancelled
type Task interface {
	// Stop prevents the task from running. It returns false if the task already ran or was stopped.
	Stop() bool
}

// Scheduler runs fn once after the delay
// Implementations must run fn on the same goroutine that drives the table.
type Scheduler interface {
	Schedule(after time.Duration, fn func()) Task
}

func stopTask(task Task) {
	if task != nil {
		task.Stop()
	}
}
