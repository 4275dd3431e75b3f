// Package audio implements the hermes audio server: it plays the WAV
// payloads of PlayBytes messages through the beep library and reports each
// finished playback.
package audio
