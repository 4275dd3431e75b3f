// Command libhermes builds the hermes C library:
//
//	go build -buildmode=c-shared -o libhermes.so ./cmd/libhermes
//
// Every exported function is a shim onto internal/boundary; the generated
// libhermes.h declares them next to the types of hermes.h.
package main

/*
#include "hermes.h"
*/
import "C"

import (
	"log/slog"
	"os"
	"unsafe"

	"github.com/jmylchreest/hermes/internal/boundary"
)

//go:generate go run ./gen -o exports.go

// Set via ldflags.
var version = "dev"

var engine = newEngine()

type cAllocator struct{}

func (cAllocator) CString(s string) unsafe.Pointer {
	return unsafe.Pointer(C.CString(s))
}

func (cAllocator) Record() *boundary.Record {
	return (*boundary.Record)(C.hermes_alloc_record())
}

func (cAllocator) Free(p unsafe.Pointer) {
	C.free(p)
}

func invoke(fn, payload unsafe.Pointer, ud boundary.UserData) {
	C.hermes_invoke_callback(fn, (*C.char)(payload), C.uintptr_t(ud))
}

func newEngine() *boundary.Engine {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if os.Getenv("HERMES_DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("lib", "hermes", "version", version)
	return boundary.New(cAllocator{}, invoke, logger, level)
}

func result(s boundary.Status) C.HERMES_RESULT {
	return C.HERMES_RESULT(s)
}

// The C records share the layout of boundary.Record.

func handlerRecord(p *C.CProtocolHandler) *boundary.Record {
	return (*boundary.Record)(unsafe.Pointer(p))
}

func facadeRecord(p *C.CFacade) *boundary.Record {
	return (*boundary.Record)(unsafe.Pointer(p))
}

func accessor(domain string, handler *C.CProtocolHandler, facade **C.CFacade) C.HERMES_RESULT {
	return result(engine.Facade(domain, handlerRecord(handler), (**boundary.Record)(unsafe.Pointer(facade))))
}

func dropFacade(domain string, facade *C.CFacade) C.HERMES_RESULT {
	return result(engine.DestroyFacade(domain, facadeRecord(facade)))
}

func publish(symbol string, facade *C.CFacade, args ...unsafe.Pointer) C.HERMES_RESULT {
	return result(engine.Publish(symbol, facadeRecord(facade), args...))
}

func subscribe(symbol string, facade *C.CFacade, handler C.hermes_callback, filters ...unsafe.Pointer) C.HERMES_RESULT {
	return result(engine.Subscribe(symbol, facadeRecord(facade), unsafe.Pointer(handler), filters...))
}

func dropMessage(kind string, message *C.char) C.HERMES_RESULT {
	return result(engine.DropMessage(kind, unsafe.Pointer(message)))
}

//export hermes_protocol_handler_new
func hermes_protocol_handler_new(handler **C.CProtocolHandler, busURL *C.char, userData unsafe.Pointer) C.HERMES_RESULT {
	return result(engine.NewHandler((**boundary.Record)(unsafe.Pointer(handler)), unsafe.Pointer(busURL), boundary.UserData(uintptr(userData))))
}

//export hermes_protocol_handler_new_with_options
func hermes_protocol_handler_new_with_options(handler **C.CProtocolHandler, tomlOptions *C.char, userData unsafe.Pointer) C.HERMES_RESULT {
	return result(engine.NewHandlerWithOptions((**boundary.Record)(unsafe.Pointer(handler)), unsafe.Pointer(tomlOptions), boundary.UserData(uintptr(userData))))
}

//export hermes_protocol_handler_new_from_config
func hermes_protocol_handler_new_from_config(handler **C.CProtocolHandler, configPath *C.char, userData unsafe.Pointer) C.HERMES_RESULT {
	return result(engine.NewHandlerFromConfig((**boundary.Record)(unsafe.Pointer(handler)), unsafe.Pointer(configPath), boundary.UserData(uintptr(userData))))
}

// hermes_destroy_protocol_handler always returns HERMES_RESULT_OK.
//
//export hermes_destroy_protocol_handler
func hermes_destroy_protocol_handler(handler *C.CProtocolHandler) C.HERMES_RESULT {
	return result(engine.DestroyHandler(handlerRecord(handler)))
}

//export hermes_enable_debug_logs
func hermes_enable_debug_logs() C.HERMES_RESULT {
	return result(engine.EnableDebugLogs())
}

//export hermes_get_last_error
func hermes_get_last_error(err **C.char) C.HERMES_RESULT {
	return result(engine.LastError((*unsafe.Pointer)(unsafe.Pointer(err))))
}

//export hermes_destroy_string
func hermes_destroy_string(s *C.char) C.HERMES_RESULT {
	return result(engine.DestroyString(unsafe.Pointer(s)))
}

func main() {}
