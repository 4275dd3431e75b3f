package boundary

// Record mirrors the C layout shared by CProtocolHandler and CFacade:
//
//	typedef struct { uintptr_t handle; void *user_data; } CFacade;
//
// Records are allocated by the Allocator and belong to the foreign caller
// until the paired destroy function hands them back.
type Record struct {
	Handle   uintptr
	UserData UserData
}
