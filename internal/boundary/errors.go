package boundary

import (
	"errors"
	"fmt"
	"sync"
)

// Status is the result code returned by every exported function.
type Status int

// Status codes, matching HERMES_RESULT.
const (
	StatusOK Status = 0
	StatusKO Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "HERMES_RESULT_OK"
	case StatusKO:
		return "HERMES_RESULT_KO"
	default:
		return fmt.Sprintf("HERMES_RESULT(%d)", int(s))
	}
}

// Sentinel errors.
var (
	ErrMissingCallback = errors.New("missing callback")
	ErrNullPointer     = errors.New("null pointer")
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrUnknownDomain   = errors.New("unknown domain")
	ErrWrongHandle     = errors.New("handle does not hold the expected value")
	ErrArgumentCount   = errors.New("wrong number of arguments")
)

// ConversionError reports foreign data that could not be converted.
type ConversionError struct {
	Arg string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("could not convert %s: %v", e.Arg, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// OperationError reports a failure of the wrapped library call.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// lastError keeps the message of the most recent failure for
// hermes_get_last_error.
type lastError struct {
	mu  sync.Mutex
	msg string
}

func (l *lastError) set(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msg = msg
}

func (l *lastError) get() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.msg
}

// call runs fn and turns its outcome into a Status. It is the only place
// where errors become StatusKO; the message stays available through
// LastError. Panics are not recovered.
func (e *Engine) call(symbol string, fn func() error) Status {
	err := fn()
	if err == nil {
		return StatusOK
	}

	e.lastErr.set(fmt.Sprintf("%s: %v", symbol, err))
	e.logger.Debug("call failed", "symbol", symbol, "error", err)
	return StatusKO
}
