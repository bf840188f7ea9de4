package run

// Failure is the signal a test body raises — via panic — to abort the
// current test with a message. It is the only panic the harness itself
// produces, and the runner's per-test boundary is the only place it is
// recovered. Any other panic escaping a test body is reported as an
// unclassified failure.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Abort raises a Failure carrying message. It does not return.
func Abort(message string) {
	panic(&Failure{Message: message})
}
