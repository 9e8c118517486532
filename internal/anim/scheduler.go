// Package anim drives the progressive reveal of reconstructed timelines.
package anim

// Scheduler abstracts the host's rendering loop. The controller asks for one
// frame callback at a time; the host must run callbacks on the same logical
// thread as every other controller entry point.
type Scheduler interface {
	// RequestFrame schedules fn for the next frame boundary and returns a
	// cancel that drops the request if it has not fired yet.
	RequestFrame(fn func()) (cancel func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func()) (cancel func())

// RequestFrame implements Scheduler.
func (s SchedulerFunc) RequestFrame(fn func()) (cancel func()) {
	return s(fn)
}
