// Package clientdist embeds the thin client JavaScript bundle.
package clientdist

import _ "embed"

// SelupJS is the thin client script.
//
// It is served by the application at "/_selup/client.js".
//
//go:embed selup.js
var SelupJS []byte
