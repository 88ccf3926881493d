// Package protocol implements the binary wire protocol between the thin
// browser client and the selup session server.
//
// The protocol is deliberately small. Three event kinds flow from client
// to server (viewport intersection batches, form submit attempts, input
// value changes) and a handful of DOM patch operations flow back
// (class add/remove, attribute set/remove, and a submit release).
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// Payloads use varint-encoded integers and length-prefixed strings.
// Floating point values (intersection ratios) are IEEE 754 big-endian.
//
// # Handshake
//
// The client opens with a ClientHello carrying the protocol version,
// the page identifier, and a capability bitmask. CapObserver announces
// that the browser supports viewport-intersection observation; a client
// without it never sends Intersect events and the server reveals every
// watched element immediately after the ServerHello.
//
// # Submission gating
//
// The client cancels every native form submission and reports it as an
// EventSubmit. The form proceeds only when the server answers with a
// PatchAllowSubmit for the form element.
package protocol
