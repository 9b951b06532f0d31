package scheduler

import (
	"fmt"
	"time"
)

// Duration is a (delay, time unit) pair describing an idle-timeout
// interval. Immutable; two durations are equal when both fields match.
type Duration struct {
	delay int64
	unit  time.Duration
}

// Every builds a duration of delay * unit.
func Every(delay int64, unit time.Duration) Duration {
	return Duration{delay: delay, unit: unit}
}

// Millis builds a millisecond duration.
func Millis(delay int64) Duration {
	return Every(delay, time.Millisecond)
}

// Seconds builds a second duration.
func Seconds(delay int64) Duration {
	return Every(delay, time.Second)
}

// Delay returns the delay component.
func (d Duration) Delay() int64 {
	return d.delay
}

// Unit returns the time-unit component.
func (d Duration) Unit() time.Duration {
	return d.unit
}

// Interval returns the duration as a time.Duration.
func (d Duration) Interval() time.Duration {
	return time.Duration(d.delay) * d.unit
}

func (d Duration) String() string {
	return d.Interval().String()
}

func (d Duration) validate() error {
	if d.delay <= 0 {
		return fmt.Errorf("scheduler delay must be strictly positive, got %d", d.delay)
	}
	if d.unit <= 0 {
		return fmt.Errorf("scheduler time unit must be strictly positive, got %d", int64(d.unit))
	}
	return nil
}
