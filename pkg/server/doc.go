// Package server hosts the landing page behaviors over HTTP and
// WebSocket.
//
// Each WebSocket connection gets a Session owning one page model and
// its controllers. The session runs three goroutines: a read loop
// decoding frames off the wire, a heartbeat loop, and a single event
// loop where every behavior runs. The page model is only ever touched
// on the event loop, matching the one-UI-thread model the controllers
// assume.
//
// DOM mutations produced while handling one event are collected through
// the page's sink and flushed to the client as one patches frame, so
// the browser applies them in a single turn.
package server
