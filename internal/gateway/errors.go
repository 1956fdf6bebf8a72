package gateway

// validationError signals a malformed request for 400 mapping. The engine is
// never touched on this path.
type validationError struct{ msg string }

func (e validationError) Error() string   { return e.msg }
func (e validationError) StatusCode() int { return 400 }

// ErrValidation constructs a validationError.
func ErrValidation(msg string) error { return validationError{msg: msg} }

// IsValidation reports whether err indicates a client-side request problem.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// unavailableError signals that no engine is loaded (or the gate does not
// exist) for 503 mapping. Callers may retry later; the gateway never does.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string   { return e.msg }
func (e unavailableError) StatusCode() int { return 503 }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates the engine is not serving.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}

// upstreamShapeError signals that the engine returned something not matching
// the expected structured result. Treated as internal; the wire message stays
// generic to avoid leaking engine internals.
type upstreamShapeError struct{ msg string }

func (e upstreamShapeError) Error() string { return "unexpected engine result: " + e.msg }

// IsUpstreamShape reports whether err indicates a malformed engine result.
func IsUpstreamShape(err error) bool {
	_, ok := err.(upstreamShapeError)
	return ok
}
