package boundary

import (
	"bytes"
	"encoding/json"
	"errors"
	"unicode/utf8"
	"unsafe"
)

var (
	errInvalidUTF8  = errors.New("invalid UTF-8")
	errTrailingData = errors.New("trailing data after JSON document")
)

// Allocator hands out foreign-owned memory: NUL-terminated strings and
// handle records. Both go back through Free.
type Allocator interface {
	CString(s string) unsafe.Pointer
	Record() *Record
	Free(p unsafe.Pointer)
}

// Invoker calls the foreign callback fn with a payload and the context
// pointer registered with it.
type Invoker func(fn unsafe.Pointer, payload unsafe.Pointer, userData UserData)

// GoString copies the NUL-terminated UTF-8 string at p.
func GoString(p unsafe.Pointer, arg string) (string, error) {
	if p == nil {
		return "", &ConversionError{Arg: arg, Err: ErrNullPointer}
	}

	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	s := string(unsafe.Slice((*byte)(p), n))

	if !utf8.ValidString(s) {
		return "", &ConversionError{Arg: arg, Err: errInvalidUTF8}
	}
	return s, nil
}

// decodeMessage converts a borrowed JSON document into msg.
func decodeMessage(p unsafe.Pointer, msg any) error {
	s, err := GoString(p, "message")
	if err != nil {
		return err
	}
	if err := strictUnmarshal([]byte(s), msg); err != nil {
		return &ConversionError{Arg: "message", Err: err}
	}
	return nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}
