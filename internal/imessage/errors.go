package imessage

import "fmt"

// DataAccessError wraps a failure from the underlying chat.db query
// layer. It is the only error kind the accessor returns: unresolved
// identifiers yield empty results, never errors.
type DataAccessError struct {
	Op  string // the failing operation, e.g. "list conversations"
	Err error  // the native driver error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

func accessErr(op string, err error) *DataAccessError {
	return &DataAccessError{Op: op, Err: err}
}
