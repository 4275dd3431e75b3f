package boundary

import (
	"fmt"
	"runtime/cgo"
)

// A handle is the pointer-sized value stored in CProtocolHandler and
// CFacade records. It refers to a heap box through runtime/cgo, so foreign
// code never sees a Go pointer nor the layout of the boxed value.

func wrap[T any](box *T) uintptr {
	return uintptr(cgo.NewHandle(box))
}

// extract borrows the boxed value. The handle must not be destroyed
// concurrently; an already destroyed handle panics inside runtime/cgo.
func extract[T any](h uintptr) (*T, error) {
	if h == 0 {
		return nil, ErrNullPointer
	}
	box, ok := cgo.Handle(h).Value().(*T)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrWrongHandle, cgo.Handle(h).Value())
	}
	return box, nil
}

// destroy releases the handle and returns the boxed value to the caller,
// which drops it. It must be called at most once per handle.
func destroy[T any](h uintptr) (*T, error) {
	box, err := extract[T](h)
	if err != nil {
		return nil, err
	}
	cgo.Handle(h).Delete()
	return box, nil
}
