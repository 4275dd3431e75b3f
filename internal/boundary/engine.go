// Package boundary turns the hermes client library into a flat surface of
// status-returning functions over opaque handle records, C strings and raw
// callbacks. It holds no cgo code itself: memory comes from an Allocator
// and callbacks go through an Invoker, so the engines run unchanged in
// tests and behind the exported shims of cmd/libhermes.
package boundary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/jmylchreest/hermes/internal/config"
	"github.com/jmylchreest/hermes/internal/hermes"
	"github.com/jmylchreest/hermes/internal/ontology"
)

type handlerBox struct {
	handler *hermes.Handler
	ud      UserData
}

type facadeBox struct {
	domain *Domain
	facade facadeCloser
	ud     UserData
}

// Engine implements every exported operation.
type Engine struct {
	alloc   Allocator
	invoke  Invoker
	logger  *slog.Logger
	level   *slog.LevelVar
	lastErr lastError
}

// New creates an engine. level controls logger and is raised by
// EnableDebugLogs.
func New(alloc Allocator, invoke Invoker, logger *slog.Logger, level *slog.LevelVar) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if level == nil {
		level = new(slog.LevelVar)
	}
	return &Engine{
		alloc:  alloc,
		invoke: invoke,
		logger: logger,
		level:  level,
	}
}

// NewHandler connects to busURL, or to the default bus when busURL is nil.
func (e *Engine) NewHandler(out **Record, busURL unsafe.Pointer, ud UserData) Status {
	return e.call("hermes_protocol_handler_new", func() error {
		if out == nil {
			return &ConversionError{Arg: "handler", Err: ErrNullPointer}
		}

		cfg := config.DefaultConfig()
		if busURL != nil {
			url, err := GoString(busURL, "bus_url")
			if err != nil {
				return err
			}
			cfg.Bus.URL = url
			if err := cfg.Validate(); err != nil {
				return &ConversionError{Arg: "bus_url", Err: err}
			}
		}
		_, err := e.openHandler(out, cfg, ud)
		return err
	})
}

// NewHandlerWithOptions connects using a TOML configuration document.
func (e *Engine) NewHandlerWithOptions(out **Record, options unsafe.Pointer, ud UserData) Status {
	return e.call("hermes_protocol_handler_new_with_options", func() error {
		if out == nil {
			return &ConversionError{Arg: "handler", Err: ErrNullPointer}
		}

		doc, err := GoString(options, "toml_options")
		if err != nil {
			return err
		}
		cfg, err := config.Parse([]byte(doc), config.FormatTOML)
		if err != nil {
			return &ConversionError{Arg: "toml_options", Err: err}
		}
		e.applyLogLevel(cfg)
		_, err = e.openHandler(out, cfg, ud)
		return err
	})
}

// NewHandlerFromConfig connects using the config file at path, or the
// default config path when path is nil. The file is watched for as long as
// the handler lives and log level changes apply immediately.
func (e *Engine) NewHandlerFromConfig(out **Record, path unsafe.Pointer, ud UserData) Status {
	return e.call("hermes_protocol_handler_new_from_config", func() error {
		if out == nil {
			return &ConversionError{Arg: "handler", Err: ErrNullPointer}
		}

		file := config.ConfigPath()
		if path != nil {
			p, err := GoString(path, "config_path")
			if err != nil {
				return err
			}
			file = p
		}

		cfg, err := config.LoadConfig(file)
		if err != nil {
			return &OperationError{Op: "load config", Err: err}
		}
		e.applyLogLevel(cfg)

		h, err := e.openHandler(out, cfg, ud)
		if err != nil {
			return err
		}
		e.watchConfig(h, file)
		return nil
	})
}

func (e *Engine) openHandler(out **Record, cfg *config.Config, ud UserData) (*hermes.Handler, error) {
	h, err := hermes.Open(context.Background(), cfg, e.logger)
	if err != nil {
		return nil, &OperationError{Op: "open handler", Err: err}
	}

	rec := e.alloc.Record()
	rec.Handle = wrap(&handlerBox{handler: h, ud: ud})
	rec.UserData = ud
	*out = rec

	e.logger.Debug("protocol handler created", "bus", cfg.Bus.URL)
	return h, nil
}

func (e *Engine) applyLogLevel(cfg *config.Config) {
	lv, err := cfg.Log.SlogLevel()
	if err != nil {
		return
	}
	e.level.Set(lv)
}

func (e *Engine) watchConfig(h *hermes.Handler, file string) {
	w, err := config.NewWatcher(file, func(cfg *config.Config, err error) {
		if err != nil {
			e.logger.Warn("config reload failed", "path", file, "error", err)
			return
		}
		e.applyLogLevel(cfg)
		e.logger.Info("config reloaded", "path", file, "level", cfg.Log.Level)
	}, e.logger)
	if err != nil {
		e.logger.Warn("config watcher unavailable", "error", err)
		return
	}
	if err := w.Start(); err != nil {
		e.logger.Warn("config watcher unavailable", "path", file, "error", err)
		_ = w.Stop()
		return
	}
	h.OnClose(func() { _ = w.Stop() })
}

// DestroyHandler releases the root handle and its record. Facades obtained
// from it stay valid until they are destroyed themselves. Like every
// destructor it always succeeds; a record that does not hold a root handle
// is logged and left alone.
func (e *Engine) DestroyHandler(r *Record) Status {
	if r == nil {
		return StatusOK
	}
	box, err := destroy[handlerBox](r.Handle)
	if err != nil {
		e.logger.Warn("not a protocol handler, left alone", "symbol", "hermes_destroy_protocol_handler", "error", err)
		return StatusOK
	}
	if err := box.handler.Close(); err != nil {
		e.logger.Warn("closing protocol handler", "error", err)
	}
	e.alloc.Free(unsafe.Pointer(r))
	return StatusOK
}

// Facade obtains a new, independent facade handle for domain.
func (e *Engine) Facade(domain string, root *Record, out **Record) Status {
	d, ok := domainByName[domain]
	symbol := "hermes_protocol_handler_" + domain + "_facade"
	if ok {
		symbol = d.AccessorSymbol()
	}

	return e.call(symbol, func() error {
		if !ok {
			return ErrUnknownDomain
		}
		if root == nil {
			return &ConversionError{Arg: "handler", Err: ErrNullPointer}
		}
		if out == nil {
			return &ConversionError{Arg: "facade", Err: ErrNullPointer}
		}

		hb, err := extract[handlerBox](root.Handle)
		if err != nil {
			return err
		}

		ud := hb.ud.Duplicate()
		rec := e.alloc.Record()
		rec.Handle = wrap(&facadeBox{domain: d, facade: d.open(hb.handler), ud: ud})
		rec.UserData = ud
		*out = rec
		return nil
	})
}

// DestroyFacade ends the facade's subscriptions and releases its handle
// and record. No callback registered through it runs after it returns. It
// always succeeds; a record holding another domain's facade, or no facade,
// is logged and left alone.
func (e *Engine) DestroyFacade(domain string, r *Record) Status {
	if r == nil {
		return StatusOK
	}
	symbol := "hermes_drop_" + domain + "_facade"
	box, err := extract[facadeBox](r.Handle)
	if err == nil && box.domain.Name != domain {
		err = fmt.Errorf("%w: %s facade", ErrWrongHandle, box.domain.Name)
	}
	if err != nil {
		e.logger.Warn("not a "+domain+" facade, left alone", "symbol", symbol, "error", err)
		return StatusOK
	}

	_, _ = destroy[facadeBox](r.Handle)
	if err := box.facade.Close(); err != nil {
		e.logger.Warn("closing facade", "domain", domain, "error", err)
	}
	e.alloc.Free(unsafe.Pointer(r))
	return StatusOK
}

func (e *Engine) facadeFor(op *Operation, r *Record) (*facadeBox, error) {
	if r == nil {
		return nil, &ConversionError{Arg: "facade", Err: ErrNullPointer}
	}
	box, err := extract[facadeBox](r.Handle)
	if err != nil {
		return nil, err
	}
	if box.domain.Name != op.Domain {
		return nil, ErrWrongHandle
	}
	return box, nil
}

// convertFilters reads the filter arguments of op. Values given to a publish
// operation become a level of the published topic and must name exactly one.
func convertFilters(op *Operation, args []unsafe.Pointer, publishing bool) ([]string, error) {
	filters := make([]string, len(op.Filters))
	for i, name := range op.Filters {
		s, err := GoString(args[i], name)
		if err != nil {
			return nil, err
		}
		if publishing {
			if err := ontology.CheckTopicLevel(s); err != nil {
				return nil, &ConversionError{Arg: name, Err: err}
			}
		}
		filters[i] = s
	}
	return filters, nil
}

// Publish runs the publish operation named symbol. args holds the filter
// values in declaration order followed by the message, if the operation
// takes one. Everything is borrowed for the duration of the call.
func (e *Engine) Publish(symbol string, r *Record, args ...unsafe.Pointer) Status {
	return e.call(symbol, func() error {
		op, ok := opBySymbol[symbol]
		if !ok || op.publish == nil {
			return ErrUnknownSymbol
		}

		want := len(op.Filters)
		if op.Message != "" {
			want++
		}
		if len(args) != want {
			return ErrArgumentCount
		}

		box, err := e.facadeFor(op, r)
		if err != nil {
			return err
		}
		filters, err := convertFilters(op, args, true)
		if err != nil {
			return err
		}

		var msg unsafe.Pointer
		if op.Message != "" {
			msg = args[len(op.Filters)]
		}
		if err := op.publish(box.facade, filters, msg); err != nil {
			var conv *ConversionError
			if errors.As(err, &conv) {
				return err
			}
			return &OperationError{Op: op.Name, Err: err}
		}
		return nil
	})
}

// Subscribe registers fn for the subscribe operation named symbol. Every
// matching message is encoded once into a freshly allocated string and
// passed to fn together with the facade's context pointer; the foreign side
// owns the string from then on.
func (e *Engine) Subscribe(symbol string, r *Record, fn unsafe.Pointer, filters ...unsafe.Pointer) Status {
	return e.call(symbol, func() error {
		if fn == nil {
			return ErrMissingCallback
		}

		op, ok := opBySymbol[symbol]
		if !ok || op.subscribe == nil {
			return ErrUnknownSymbol
		}
		if len(filters) != len(op.Filters) {
			return ErrArgumentCount
		}

		box, err := e.facadeFor(op, r)
		if err != nil {
			return err
		}
		values, err := convertFilters(op, filters, false)
		if err != nil {
			return err
		}

		ud := box.ud.Duplicate()
		deliver := func(msg any) {
			data, err := json.Marshal(msg)
			if err != nil {
				e.logger.Error("encoding callback payload", "symbol", symbol, "error", err)
				return
			}
			e.invoke(fn, e.alloc.CString(string(data)), ud)
		}

		if err := op.subscribe(box.facade, values, deliver); err != nil {
			return &OperationError{Op: op.Name, Err: err}
		}
		return nil
	})
}

// DropMessage frees a payload previously handed to a callback.
func (e *Engine) DropMessage(kind string, p unsafe.Pointer) Status {
	return e.call(MessageDropSymbol(kind), func() error {
		if p != nil {
			e.alloc.Free(p)
		}
		return nil
	})
}

// LastError writes a copy of the most recent failure message to out. The
// caller frees it with DestroyString.
func (e *Engine) LastError(out *unsafe.Pointer) Status {
	if out == nil {
		return e.call("hermes_get_last_error", func() error {
			return &ConversionError{Arg: "error", Err: ErrNullPointer}
		})
	}
	*out = e.alloc.CString(e.lastErr.get())
	return StatusOK
}

// DestroyString frees a string returned by LastError.
func (e *Engine) DestroyString(p unsafe.Pointer) Status {
	if p != nil {
		e.alloc.Free(p)
	}
	return StatusOK
}

// EnableDebugLogs lowers the log level to debug.
func (e *Engine) EnableDebugLogs() Status {
	e.level.Set(slog.LevelDebug)
	e.logger.Debug("debug logs enabled")
	return StatusOK
}
