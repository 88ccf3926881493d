package protocol

// ControlType identifies the type of control message.
type ControlType uint8

const (
	ControlPing ControlType = 0x01
	ControlPong ControlType = 0x02
)

// String returns the string representation of the control type.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	default:
		return "Unknown"
	}
}

// EncodeControl encodes a ping or pong with a millisecond timestamp.
func EncodeControl(ct ControlType, timestamp uint64) []byte {
	e := NewEncoder()
	e.WriteByte(byte(ct))
	e.WriteUint64(timestamp)
	return e.Bytes()
}

// DecodeControl decodes a control message.
func DecodeControl(data []byte) (ControlType, uint64, error) {
	d := NewDecoder(data)

	typeByte, err := d.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	ts, err := d.ReadUint64()
	if err != nil {
		return 0, 0, err
	}
	return ControlType(typeByte), ts, nil
}

// ErrorCode identifies a server-reported error.
type ErrorCode uint8

const (
	ErrCodeInvalidFrame ErrorCode = 0x01 // Frame could not be decoded
	ErrCodeInvalidEvent ErrorCode = 0x02 // Event payload could not be decoded
	ErrCodeRateLimited  ErrorCode = 0x03 // Event queue full
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrCodeInvalidFrame:
		return "InvalidFrame"
	case ErrCodeInvalidEvent:
		return "InvalidEvent"
	case ErrCodeRateLimited:
		return "RateLimited"
	default:
		return "Unknown"
	}
}

// ErrorMessage is the payload of a FrameError.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
}

// EncodeError encodes an error message.
func EncodeError(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteByte(byte(em.Code))
	e.WriteString(em.Message)
	return e.Bytes()
}

// DecodeError decodes an error message.
func DecodeError(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)

	code, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: msg}, nil
}
