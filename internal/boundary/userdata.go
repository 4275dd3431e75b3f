package boundary

// UserData is the caller's context pointer, kept as a plain address. The
// engine never dereferences or frees it, so copies may move freely between
// goroutines; keeping the pointee valid is the caller's job.
type UserData uintptr

// Duplicate returns a copy of the address for a derived handle or callback.
func (u UserData) Duplicate() UserData {
	return u
}
