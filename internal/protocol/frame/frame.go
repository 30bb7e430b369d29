package frame

import (
	"errors"
	"fmt"
	"io"
)

const (
	HeaderLen     = 6
	MaxPayloadLen = 0xff
)

var (
	ErrShortHeader      = errors.New("frame: short request header")
	ErrPayloadTooLarge  = errors.New("frame: payload too large")
	ErrLengthMismatch   = errors.New("frame: command data length does not match payload")
	ErrShortRead        = errors.New("frame: short read")
	ErrInvalidHeaderLen = errors.New("frame: invalid header length")
)

// Header is the fixed six byte request header.
type Header struct {
	TypeCode   uint8
	CommandID  uint8
	InstanceID uint8
	Priority   uint8
	SNC        uint8
	CDL        uint8
}

// Frame is one complete request: header followed by CDL payload bytes.
type Frame struct {
	Header  Header
	Payload []byte
}

// Marshal encodes f. CDL is always taken from len(f.Payload); any value
// carried in f.Header.CDL is ignored.
func Marshal(f Frame) ([]byte, error) {
	if len(f.Payload) > MaxPayloadLen {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(f.Payload), MaxPayloadLen)
	}
	h := f.Header
	h.CDL = uint8(len(f.Payload))

	buf := make([]byte, 0, HeaderLen+len(f.Payload))
	buf = append(buf, EncodeHeader(h)...)
	buf = append(buf, f.Payload...)
	return buf, nil
}

// WriteFrame encodes f and writes it with a single call. Nothing is written
// when encoding fails.
func WriteFrame(w io.Writer, f Frame) error {
	b, err := Marshal(f)
	if err != nil {
		return err
	}
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}

// ReadFrame decodes one request frame from r.
func ReadFrame(r io.Reader) (Frame, error) {
	var fixed [HeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return Frame{}, err
	}

	payload := make([]byte, h.CDL)
	if h.CDL > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return Frame{}, ErrShortRead
			}
			return Frame{}, err
		}
	}
	return Frame{Header: h, Payload: payload}, nil
}

// Unmarshal decodes a complete request frame held in b. Trailing bytes
// beyond the declared CDL are rejected.
func Unmarshal(b []byte) (Frame, error) {
	if len(b) < HeaderLen {
		return Frame{}, ErrShortHeader
	}
	h, err := DecodeHeader(b[:HeaderLen])
	if err != nil {
		return Frame{}, err
	}
	if len(b)-HeaderLen != int(h.CDL) {
		return Frame{}, fmt.Errorf("%w: cdl=%d payload=%d", ErrLengthMismatch, h.CDL, len(b)-HeaderLen)
	}
	payload := make([]byte, h.CDL)
	copy(payload, b[HeaderLen:])
	return Frame{Header: h, Payload: payload}, nil
}

func EncodeHeader(h Header) []byte {
	return []byte{h.TypeCode, h.CommandID, h.InstanceID, h.Priority, h.SNC, h.CDL}
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderLen {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidHeaderLen, len(b))
	}
	return Header{
		TypeCode:   b[0],
		CommandID:  b[1],
		InstanceID: b[2],
		Priority:   b[3],
		SNC:        b[4],
		CDL:        b[5],
	}, nil
}
