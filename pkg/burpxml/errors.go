package burpxml

import (
	"errors"
	"fmt"
)

// ErrTruncated reports that the stream ended mid-item or before the closing
// root tag. Items returned before it are complete and trustworthy; the
// caller records the truncation and keeps them.
var ErrTruncated = errors.New("burpxml: stream truncated before export was complete")

// ContainerError is fatal: the document is malformed in a way that makes
// the boundaries of subsequent items untrustworthy, so no further items can
// be safely produced.
type ContainerError struct {
	// Offset is the byte offset into the stream where the problem was
	// detected.
	Offset int64

	// Reason describes what was wrong.
	Reason string

	// Err is the underlying decoder error, if any.
	Err error
}

func (e *ContainerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("burpxml: container malformed at byte %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("burpxml: container malformed at byte %d: %s", e.Offset, e.Reason)
}

func (e *ContainerError) Unwrap() error { return e.Err }

// DecodeError reports a payload that claimed to be base64 but was not.
// It is scoped to a single message of a single item.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("burpxml: decode payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
