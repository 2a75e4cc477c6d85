package domain

import (
	"errors"
	"fmt"
)

// ErrProjectNotFound signals a single-document read for an id that does not
// exist. It is an explicit result, never a panic.
var ErrProjectNotFound = errors.New("project not found")

// RemoteWriteError wraps a rejected write against the remote store
// (network failure, permission denial, provider rejection). Handlers map it
// to a generic save/delete failure; no automatic retry is performed.
type RemoteWriteError struct {
	Op  string // "create", "update", "delete"
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// IsRemoteWrite reports whether err is (or wraps) a RemoteWriteError.
func IsRemoteWrite(err error) bool {
	var rwe *RemoteWriteError
	return errors.As(err, &rwe)
}
