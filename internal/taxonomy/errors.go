package taxonomy

// Error represents an invalid taxonomy definition or an unreadable taxonomy file
type Error struct {
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}
