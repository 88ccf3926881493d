package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestIntersectEventRoundTrip(t *testing.T) {
	event := &Event{
		Seq:  7,
		Type: EventIntersect,
		Entries: []IntersectEntry{
			{Target: "hero", Ratio: 0.35, Intersecting: true},
			{Target: "pricing", Ratio: 0.05, Intersecting: false},
		},
	}

	decoded, err := DecodeEvent(EncodeEvent(event))
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.Seq != 7 || decoded.Type != EventIntersect {
		t.Errorf("header = (%d, %v), want (7, Intersect)", decoded.Seq, decoded.Type)
	}
	if len(decoded.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(decoded.Entries))
	}
	if decoded.Entries[0].Target != "hero" || !decoded.Entries[0].Intersecting {
		t.Errorf("entry 0 = %+v, want hero/intersecting", decoded.Entries[0])
	}
	if decoded.Entries[1].Intersecting {
		t.Error("entry 1 should not be intersecting")
	}
	if decoded.Entries[0].Ratio != 0.35 {
		t.Errorf("entry 0 ratio = %v, want 0.35", decoded.Entries[0].Ratio)
	}
}

func TestIntersectEventEmptyBatch(t *testing.T) {
	event := &Event{Seq: 1, Type: EventIntersect}

	decoded, err := DecodeEvent(EncodeEvent(event))
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if len(decoded.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(decoded.Entries))
	}
}

func TestSubmitEventRoundTrip(t *testing.T) {
	event := &Event{Seq: 3, Type: EventSubmit, Target: "contact-form", Value: "   "}

	decoded, err := DecodeEvent(EncodeEvent(event))
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.Target != "contact-form" {
		t.Errorf("target = %q, want contact-form", decoded.Target)
	}
	// Whitespace must survive the wire untouched; trimming is the
	// validator's job, not the codec's.
	if decoded.Value != "   " {
		t.Errorf("value = %q, want three spaces", decoded.Value)
	}
}

func TestInputEventRoundTrip(t *testing.T) {
	event := &Event{Seq: 4, Type: EventInput, Target: "contact-name", Value: "x"}

	decoded, err := DecodeEvent(EncodeEvent(event))
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.Type != EventInput || decoded.Value != "x" {
		t.Errorf("decoded = (%v, %q), want (Input, \"x\")", decoded.Type, decoded.Value)
	}
}

func TestDecodeEventUnknownType(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteByte(0x7F)
	e.WriteString("")

	if _, err := DecodeEvent(e.Bytes()); !errors.Is(err, ErrInvalidEventType) {
		t.Errorf("expected ErrInvalidEventType, got %v", err)
	}
}

func TestPatchesRoundTrip(t *testing.T) {
	pf := &PatchesFrame{
		Seq: 12,
		Patches: []Patch{
			NewAddClassPatch("hero", "is-visible"),
			NewRemoveClassPatch("form-error", "is-visible"),
			NewSetAttrPatch("contact-name", "aria-invalid", "true"),
			NewRemoveAttrPatch("contact-name", "aria-invalid"),
			NewAllowSubmitPatch("contact-form"),
		},
	}

	decoded, err := DecodePatches(EncodePatches(pf))
	if err != nil {
		t.Fatalf("DecodePatches failed: %v", err)
	}

	if decoded.Seq != 12 {
		t.Errorf("seq = %d, want 12", decoded.Seq)
	}
	if len(decoded.Patches) != len(pf.Patches) {
		t.Fatalf("patches = %d, want %d", len(decoded.Patches), len(pf.Patches))
	}
	for i, p := range decoded.Patches {
		if p != pf.Patches[i] {
			t.Errorf("patch %d = %+v, want %+v", i, p, pf.Patches[i])
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	payload := EncodeEvent(&Event{Seq: 1, Type: EventInput, Target: "contact-name", Value: "hi"})
	frame := NewFrame(FrameEvent, payload)

	decoded, err := DecodeFrame(frame.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if decoded.Type != FrameEvent {
		t.Errorf("type = %v, want Event", decoded.Type)
	}
	if !bytes.Equal(decoded.Payload, payload) {
		t.Error("payload mismatch after round trip")
	}
}

func TestFrameReaderWriter(t *testing.T) {
	var buf bytes.Buffer
	frame := NewFrame(FrameControl, EncodeControl(ControlPing, 1700000000000))

	if err := WriteFrame(&buf, frame); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	decoded, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	ct, ts, err := DecodeControl(decoded.Payload)
	if err != nil {
		t.Fatalf("DecodeControl failed: %v", err)
	}
	if ct != ControlPing || ts != 1700000000000 {
		t.Errorf("control = (%v, %d), want (Ping, 1700000000000)", ct, ts)
	}
}

func TestDecodeFrameShortInput(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x01, 0x00}); !errors.Is(err, ErrShortFrame) {
		t.Errorf("expected ErrShortFrame, got %v", err)
	}
}

func TestClientHelloRoundTrip(t *testing.T) {
	ch := &ClientHello{Version: Version, PageID: "landing", Capabilities: CapObserver}

	decoded, err := DecodeClientHello(EncodeClientHello(ch))
	if err != nil {
		t.Fatalf("DecodeClientHello failed: %v", err)
	}
	if decoded.PageID != "landing" {
		t.Errorf("page = %q, want landing", decoded.PageID)
	}
	if !decoded.HasObserver() {
		t.Error("expected observer capability")
	}
}

func TestClientHelloWithoutObserver(t *testing.T) {
	ch := &ClientHello{Version: Version, PageID: "landing"}

	decoded, err := DecodeClientHello(EncodeClientHello(ch))
	if err != nil {
		t.Fatalf("DecodeClientHello failed: %v", err)
	}
	if decoded.HasObserver() {
		t.Error("observer capability should be absent")
	}
}

func TestServerHelloRoundTrip(t *testing.T) {
	sh := &ServerHello{Status: HandshakeOK, SessionID: "s-42", ServerTime: 1700000000000}

	decoded, err := DecodeServerHello(EncodeServerHello(sh))
	if err != nil {
		t.Fatalf("DecodeServerHello failed: %v", err)
	}
	if decoded.Status != HandshakeOK || decoded.SessionID != "s-42" {
		t.Errorf("decoded = %+v, want %+v", decoded, sh)
	}
}

func TestErrorMessageRoundTrip(t *testing.T) {
	em := &ErrorMessage{Code: ErrCodeInvalidEvent, Message: "bad payload"}

	decoded, err := DecodeError(EncodeError(em))
	if err != nil {
		t.Fatalf("DecodeError failed: %v", err)
	}
	if decoded.Code != ErrCodeInvalidEvent || decoded.Message != "bad payload" {
		t.Errorf("decoded = %+v, want %+v", decoded, em)
	}
}
