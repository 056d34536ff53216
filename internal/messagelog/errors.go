package messagelog

import "errors"

const (
	// ReadError wraps failures reading the log document other than absence.
	ReadError = constError("failed to read message log")
	// WriteError wraps failures persisting the log document.
	WriteError = constError("failed to write message log")
)

// IsWriteError checks if the error came from persisting the log.
func IsWriteError(err error) bool {
	return errors.Is(err, WriteError)
}

// IsReadError checks if the error came from reading the log.
func IsReadError(err error) bool {
	return errors.Is(err, ReadError)
}

type constError string

func (e constError) Error() string {
	return string(e)
}
