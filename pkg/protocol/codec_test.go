package protocol

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, math.MaxUint32, math.MaxUint64}

	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d) failed: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d = %d", v, got)
		}
		if !d.EOF() {
			t.Errorf("decoder not at EOF after %d, %d bytes remain", v, d.Remaining())
		}
	}
}

func TestUvarintTruncated(t *testing.T) {
	// A continuation bit with no following byte.
	d := NewDecoder([]byte{0x80})
	if _, err := d.ReadUvarint(); err != io.ErrUnexpectedEOF {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestUvarintOverflow(t *testing.T) {
	// 11 continuation bytes exceed 64 bits of payload.
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0xFF
	}
	d := NewDecoder(buf)
	if _, err := d.ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("expected ErrVarintOverflow, got %v", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	strs := []string{"", "hero", "контакт", "a value with spaces  "}

	for _, s := range strs {
		e := NewEncoder()
		e.WriteString(s)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q) failed: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}

func TestStringLengthBeyondBuffer(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(100) // Claims 100 bytes, provides none

	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); err != io.ErrUnexpectedEOF {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	values := []float64{0, 0.2, 0.1999999, 1.0, -1.5}

	for _, v := range values {
		e := NewEncoder()
		e.WriteFloat64(v)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadFloat64()
		if err != nil {
			t.Fatalf("ReadFloat64(%v) failed: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %v = %v", v, got)
		}
	}
}

func TestBatchCountLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxBatchLen + 1)
	// Pad so the remaining-bytes check is not the failure reached first.
	e.WriteBytes(make([]byte, MaxBatchLen+1))

	d := NewDecoder(e.Bytes())
	if _, err := d.ReadBatchCount(); !errors.Is(err, ErrBatchTooLarge) {
		t.Errorf("expected ErrBatchTooLarge, got %v", err)
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("first")
	e.Reset()
	e.WriteBool(true)

	if e.Len() != 1 {
		t.Errorf("Len after reset = %d, want 1", e.Len())
	}
}
