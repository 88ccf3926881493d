package selup

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Quiexx/selup-landing-demo/internal/config"
	"github.com/Quiexx/selup-landing-demo/pkg/protocol"
	"github.com/Quiexx/selup-landing-demo/pkg/reveal"
	"github.com/Quiexx/selup-landing-demo/pkg/server"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Name = "landing"
	cfg.Page.Sections = []string{"hero", "features"}
	cfg.Page.Contact = config.ContactConfig{
		Form:  "contact-form",
		Input: "contact-email",
		Error: "contact-error",
	}
	return cfg
}

func testStatic() http.FileSystem {
	return http.FS(fstest.MapFS{
		"index.html": {Data: []byte("<!doctype html><title>landing</title>")},
		"app.css":    {Data: []byte("body{}")},
	})
}

func newApp(cfg *config.Config) *App {
	metrics := server.NewMetrics(server.WithRegistry(prometheus.NewRegistry()))
	return New(cfg, WithStaticFS(testStatic()), WithMetrics(metrics))
}

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()

	app := newApp(testConfig())
	ts := httptest.NewServer(app)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServesIndexAtRoot(t *testing.T) {
	ts := newTestApp(t)

	resp := get(t, ts, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "landing") {
		t.Errorf("unexpected body %q", body)
	}
}

func TestServesAssets(t *testing.T) {
	ts := newTestApp(t)

	if resp := get(t, ts, "/app.css"); resp.StatusCode != http.StatusOK {
		t.Errorf("app.css status = %d", resp.StatusCode)
	}
	if resp := get(t, ts, "/missing.js"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing.js status = %d", resp.StatusCode)
	}
}

func TestServesClientScript(t *testing.T) {
	ts := newTestApp(t)

	resp := get(t, ts, ClientScriptPath)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "WebSocket") {
		t.Error("client script looks wrong")
	}
}

func TestRejectsTraversal(t *testing.T) {
	ts := newTestApp(t)

	// Encoded dot segments survive client-side path cleaning.
	paths := []string{
		"/..%2fgo.mod",
		"/a/..%2f..%2fgo.mod",
		"/%2e%2e/go.mod",
		"/sub%5c..%5cgo.mod",
	}
	for _, p := range paths {
		resp, err := http.Get(ts.URL + p)
		if err != nil {
			t.Fatalf("get %s: %v", p, err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			t.Errorf("%s unexpectedly served", p)
		}
	}
}

func TestCacheHeaders(t *testing.T) {
	app := newApp(testConfig())

	tests := []struct {
		path string
		want string
	}{
		{"app.css", "no-cache"},
		{"app.4f2d9c1a.css", "immutable"},
		{"bundle.deadbeef99.js", "immutable"},
		{"notahash.xyz.css", "no-cache"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		app.applyCacheHeaders(rec, tt.path)
		if got := rec.Header().Get("Cache-Control"); !strings.Contains(got, tt.want) {
			t.Errorf("%s: Cache-Control = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRevealHook(t *testing.T) {
	app := newApp(testConfig())

	hook := app.RevealHook()
	if !strings.HasPrefix(hook, "Reveal:{") {
		t.Errorf("hook = %q", hook)
	}
	if !strings.Contains(hook, `"class":"is-visible"`) {
		t.Errorf("hook missing default class: %q", hook)
	}
}

// TestEndToEndReveal drives the full path: config, app, WebSocket
// handshake, intersection event, patch back.
func TestEndToEndReveal(t *testing.T) {
	ts := newTestApp(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := &protocol.ClientHello{
		Version:      protocol.Version,
		PageID:       "landing",
		Capabilities: protocol.CapObserver,
	}
	frame := protocol.NewFrame(protocol.FrameHandshake, protocol.EncodeClientHello(hello))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		t.Fatalf("write handshake: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read handshake: %v", err)
	}
	reply, err := protocol.DecodeFrame(msg)
	if err != nil || reply.Type != protocol.FrameHandshake {
		t.Fatalf("unexpected handshake reply: %v %v", reply, err)
	}

	event := &protocol.Event{
		Seq:  1,
		Type: protocol.EventIntersect,
		Entries: []protocol.IntersectEntry{
			{Target: "features", Ratio: 0.5, Intersecting: true},
		},
	}
	frame = protocol.NewFrame(protocol.FrameEvent, protocol.EncodeEvent(event))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		t.Fatalf("write event: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read patches: %v", err)
	}
	pframe, err := protocol.DecodeFrame(msg)
	if err != nil || pframe.Type != protocol.FramePatches {
		t.Fatalf("unexpected frame: %v %v", pframe, err)
	}
	pf, err := protocol.DecodePatches(pframe.Payload)
	if err != nil {
		t.Fatalf("decode patches: %v", err)
	}
	if len(pf.Patches) != 1 {
		t.Fatalf("got %d patches", len(pf.Patches))
	}
	p := pf.Patches[0]
	if p.Op != protocol.PatchAddClass || p.Target != "features" || p.Key != reveal.DefaultClass {
		t.Errorf("unexpected patch %+v", p)
	}
}
