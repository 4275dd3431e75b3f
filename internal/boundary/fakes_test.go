package boundary

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// fakeAlloc hands out Go memory and tracks what is still owned by the
// "foreign" side.
type fakeAlloc struct {
	mu   sync.Mutex
	live map[unsafe.Pointer]any
}

func newFakeAlloc() *fakeAlloc {
	return &fakeAlloc{live: make(map[unsafe.Pointer]any)}
}

func (a *fakeAlloc) CString(s string) unsafe.Pointer {
	b := append([]byte(s), 0)
	p := unsafe.Pointer(&b[0])

	a.mu.Lock()
	defer a.mu.Unlock()
	a.live[p] = b
	return p
}

func (a *fakeAlloc) Record() *Record {
	r := new(Record)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.live[unsafe.Pointer(r)] = r
	return r
}

func (a *fakeAlloc) Free(p unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.live[p]; !ok {
		panic("free of a pointer that is not live")
	}
	delete(a.live, p)
}

func (a *fakeAlloc) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

type delivery struct {
	ptr     unsafe.Pointer
	payload string
	ud      UserData
}

// recorder stands in for a foreign callback; its address is the function
// pointer handed to Subscribe.
type recorder struct {
	mu    sync.Mutex
	calls []delivery
}

func (r *recorder) fn() unsafe.Pointer {
	return unsafe.Pointer(r)
}

func (r *recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) Calls() []delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivery(nil), r.calls...)
}

func fakeInvoke(fn unsafe.Pointer, payload unsafe.Pointer, ud UserData) {
	r := (*recorder)(fn)
	s, err := GoString(payload, "payload")
	if err != nil {
		panic(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, delivery{ptr: payload, payload: s, ud: ud})
}

// cstr returns a borrowed NUL-terminated copy of s.
func cstr(s string) unsafe.Pointer {
	b := append([]byte(s), 0)
	return unsafe.Pointer(&b[0])
}

func newTestEngine(t *testing.T) (*Engine, *fakeAlloc, *slog.LevelVar) {
	t.Helper()
	alloc := newFakeAlloc()
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
	return New(alloc, fakeInvoke, logger, level), alloc, level
}

func busURL(t *testing.T) string {
	return "mem://" + t.Name()
}

func newRoot(t *testing.T, e *Engine, ud UserData) *Record {
	t.Helper()
	var root *Record
	require.Equal(t, StatusOK, e.NewHandler(&root, cstr(busURL(t)), ud), lastErr(e))
	require.NotNil(t, root)
	return root
}

func newFacade(t *testing.T, e *Engine, domain string, root *Record) *Record {
	t.Helper()
	var f *Record
	require.Equal(t, StatusOK, e.Facade(domain, root, &f), lastErr(e))
	require.NotNil(t, f)
	return f
}

func lastErr(e *Engine) string {
	return e.lastErr.get()
}
