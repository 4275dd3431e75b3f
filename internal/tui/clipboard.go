package tui

import (
	"errors"

	"github.com/atotto/clipboard"
)

var errNoClipboard = errors.New("no clipboard command available")

// copyText copies text to the system clipboard. On Linux this needs one of
// wl-copy, xclip or xsel on the PATH.
func copyText(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(text)
}
