package texasholdem

import "github.com/sirupsen/logrus"

// EscalateBlinds moves the blind schedule to the next level
// The new big blind applies from the next hand. The escalation timer is re-armed until the last level.
func (t *Table) EscalateBlinds() {
	stopTask(t.blindTask)
	t.blindTask = nil

	if t.blindLevel < len(t.options.BlindLevels)-1 {
		t.blindLevel++
	}

	t.logger.WithFields(logrus.Fields{
		"level":    t.blindLevel,
		"bigBlind": t.options.BlindLevels[t.blindLevel],
	}).Info("blinds increased")

	if t.nextBigBlind() > 0 {
		t.startBlindTimer()
	}

	t.emit(EventBlindsUpdated, "", t.blindsUpdated())
}

// startBlindTimer schedules the next escalation
func (t *Table) startBlindTimer() {
	if t.scheduler == nil || t.closed || t.options.BlindLevelDuration == 0 || t.nextBigBlind() == 0 {
		return
	}

	t.blindLevelStarted = t.now()
	t.blindTask = t.scheduler.Schedule(t.options.BlindLevelDuration, t.EscalateBlinds)
}

// nextBigBlind returns the big blind of the following level, or zero at the last level
func (t *Table) nextBigBlind() int {
	if t.blindLevel+1 < len(t.options.BlindLevels) {
		return t.options.BlindLevels[t.blindLevel+1]
	}

	return 0
}

// blindTimeRemaining returns the seconds until the next escalation
func (t *Table) blindTimeRemaining() int {
	if t.blindTask == nil {
		return 0
	}

	remaining := t.options.BlindLevelDuration - t.now().Sub(t.blindLevelStarted)
	if remaining < 0 {
		return 0
	}

	return int(remaining.Seconds())
}

func (t *Table) blindsUpdated() BlindsUpdated {
	return BlindsUpdated{
		Current:       t.options.BlindLevels[t.blindLevel],
		Next:          t.nextBigBlind(),
		TimeRemaining: t.blindTimeRemaining(),
	}
}
