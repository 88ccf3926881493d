package protocol

// Version is the current protocol version.
const Version uint8 = 1

// HandshakeStatus represents the result of a handshake.
type HandshakeStatus uint8

const (
	HandshakeOK              HandshakeStatus = 0x00
	HandshakeVersionMismatch HandshakeStatus = 0x01
	HandshakeUnknownPage     HandshakeStatus = 0x02
	HandshakeServerBusy      HandshakeStatus = 0x03
	HandshakeInvalidFormat   HandshakeStatus = 0x04
)

// String returns the string representation of the handshake status.
func (hs HandshakeStatus) String() string {
	switch hs {
	case HandshakeOK:
		return "OK"
	case HandshakeVersionMismatch:
		return "VersionMismatch"
	case HandshakeUnknownPage:
		return "UnknownPage"
	case HandshakeServerBusy:
		return "ServerBusy"
	case HandshakeInvalidFormat:
		return "InvalidFormat"
	default:
		return "Unknown"
	}
}

// Capability flags announced by the client in ClientHello.
const (
	// CapObserver means the browser supports viewport-intersection
	// observation. Without it the server reveals every watched element
	// immediately after the handshake.
	CapObserver uint8 = 0x01
)

// ClientHello is sent by the client after the WebSocket connection is
// established.
type ClientHello struct {
	Version      uint8  // Protocol version
	PageID       string // Identifier of the page being viewed
	Capabilities uint8  // Capability bitmask (CapObserver, ...)
}

// HasObserver reports whether the client announced intersection
// observation support.
func (ch *ClientHello) HasObserver() bool {
	return ch.Capabilities&CapObserver != 0
}

// ServerHello is the server's response to ClientHello.
type ServerHello struct {
	Status     HandshakeStatus
	SessionID  string
	ServerTime uint64 // Unix milliseconds
}

// EncodeClientHello encodes a ClientHello to bytes.
func EncodeClientHello(ch *ClientHello) []byte {
	e := NewEncoder()
	e.WriteByte(ch.Version)
	e.WriteString(ch.PageID)
	e.WriteByte(ch.Capabilities)
	return e.Bytes()
}

// DecodeClientHello decodes a ClientHello from bytes.
func DecodeClientHello(data []byte) (*ClientHello, error) {
	d := NewDecoder(data)
	ch := &ClientHello{}

	version, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ch.Version = version

	ch.PageID, err = d.ReadString()
	if err != nil {
		return nil, err
	}

	ch.Capabilities, err = d.ReadByte()
	if err != nil {
		return nil, err
	}

	return ch, nil
}

// EncodeServerHello encodes a ServerHello to bytes.
func EncodeServerHello(sh *ServerHello) []byte {
	e := NewEncoder()
	e.WriteByte(byte(sh.Status))
	e.WriteString(sh.SessionID)
	e.WriteUint64(sh.ServerTime)
	return e.Bytes()
}

// DecodeServerHello decodes a ServerHello from bytes.
func DecodeServerHello(data []byte) (*ServerHello, error) {
	d := NewDecoder(data)
	sh := &ServerHello{}

	status, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	sh.Status = HandshakeStatus(status)

	sh.SessionID, err = d.ReadString()
	if err != nil {
		return nil, err
	}

	sh.ServerTime, err = d.ReadUint64()
	if err != nil {
		return nil, err
	}

	return sh, nil
}
