// Package ontology defines the message records exchanged on the hermes bus.
//
// Every record encodes to JSON with camelCase field names, the same shape
// foreign callers read and write at the library boundary. Byte payloads
// (WAV data, audio frames) are carried as base64 strings by encoding/json.
package ontology
