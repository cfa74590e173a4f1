package outbound

// TaskDispatcher submits work to a shared worker pool so blocking tasks run
// off the request-handling goroutine. Satisfied by *ants.Pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
