package protocol

import "errors"

// EventType identifies the type of client event.
type EventType uint8

// Event type constants.
const (
	// EventIntersect carries a batch of viewport intersection entries
	// from the client's observer callback.
	EventIntersect EventType = 0x01

	// EventInput carries the current value of a watched input after a
	// value change.
	EventInput EventType = 0x02

	// EventSubmit carries the value of the watched input at the moment
	// of a form submission attempt. The client holds the submission
	// until the server answers with PatchAllowSubmit.
	EventSubmit EventType = 0x03
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventIntersect:
		return "Intersect"
	case EventInput:
		return "Input"
	case EventSubmit:
		return "Submit"
	default:
		return "Unknown"
	}
}

// IntersectEntry is one viewport intersection record: the observed
// element, the fraction of its area inside the viewport, and whether
// the threshold was crossed inward or outward.
type IntersectEntry struct {
	Target       string
	Ratio        float64
	Intersecting bool
}

// Event is a decoded client event.
//
// Target is the id of the element the event concerns: the form for
// EventSubmit, the input for EventInput, empty for EventIntersect
// (entries name their own targets). Value holds the input value for
// EventInput and EventSubmit.
type Event struct {
	Seq     uint64
	Type    EventType
	Target  string
	Value   string
	Entries []IntersectEntry
}

// ErrInvalidEventType reports an event byte outside the known range.
var ErrInvalidEventType = errors.New("protocol: invalid event type")

// EncodeEvent encodes an event to bytes.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	enc.WriteUvarint(e.Seq)
	enc.WriteByte(byte(e.Type))
	enc.WriteString(e.Target)

	switch e.Type {
	case EventIntersect:
		enc.WriteUvarint(uint64(len(e.Entries)))
		for _, entry := range e.Entries {
			enc.WriteString(entry.Target)
			enc.WriteFloat64(entry.Ratio)
			enc.WriteBool(entry.Intersecting)
		}

	case EventInput, EventSubmit:
		enc.WriteString(e.Value)
	}

	return enc.Bytes()
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	typeByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	target, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	e := &Event{Seq: seq, Type: EventType(typeByte), Target: target}

	switch e.Type {
	case EventIntersect:
		count, err := d.ReadBatchCount()
		if err != nil {
			return nil, err
		}
		entries := make([]IntersectEntry, count)
		for i := 0; i < count; i++ {
			id, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			ratio, err := d.ReadFloat64()
			if err != nil {
				return nil, err
			}
			intersecting, err := d.ReadBool()
			if err != nil {
				return nil, err
			}
			entries[i] = IntersectEntry{Target: id, Ratio: ratio, Intersecting: intersecting}
		}
		e.Entries = entries

	case EventInput, EventSubmit:
		e.Value, err = d.ReadString()
		if err != nil {
			return nil, err
		}

	default:
		return nil, ErrInvalidEventType
	}

	return e, nil
}
