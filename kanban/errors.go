package kanban

// InvalidStateError reports a handle operation invoked in the wrong
// lifecycle state, e.g. Update or Destroy on a handle that was already
// destroyed. The handle owns no goroutines, so there is nothing to wait
// for; the call simply fails.
type InvalidStateError struct {
	Op    string // the operation that was attempted
	State string // the state the handle was in
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return "kanban: " + e.Op + " on " + e.State + " handle"
}
