package room

import (
	"time"

	"holdem-server/pkg/texasholdem"
)

// runLoopScheduler runs table tasks on the dealer's run loop
type runLoopScheduler struct {
	dealer *Dealer
}

// scheduledTask is only read and written from the run loop
type scheduledTask struct {
	timer *time.Timer
	done  bool
}

func (s runLoopScheduler) Schedule(after time.Duration, fn func()) texasholdem.Task {
	task := &scheduledTask{}
	task.timer = time.AfterFunc(after, func() {
		s.dealer.exec(func() {
			if task.done {
				return
			}

			task.done = true
			fn()
			s.dealer.sendTableState()
		})
	})

	return task
}

func (t *scheduledTask) Stop() bool {
	t.timer.Stop()
	if t.done {
		return false
	}

	t.done = true
	return true
}
