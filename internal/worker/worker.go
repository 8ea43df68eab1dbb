// Package worker runs the background acquisition loops. Each worker
// owns one backend connection, polls it on a fixed interval, and
// publishes normalized records on its own channels. Failures never
// escape a worker: every error degrades the connection state and the
// next tick retries.
package worker

// publish delivers v on a small buffered channel, replacing any
// unconsumed value so the reader always observes the most recent
// snapshot. A slow or absent consumer never blocks a worker.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
