package frame

import (
	"errors"
	"fmt"
	"io"
)

// ReadResponse reads a length-prefixed response: one length byte followed by
// exactly that many payload bytes. A partial payload is never returned.
func ReadResponse(r io.Reader) ([]byte, error) {
	var length [1]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		return nil, shortRead(err, "length byte")
	}

	payload := make([]byte, length[0])
	if length[0] == 0 {
		return payload, nil
	}
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, shortRead(err, fmt.Sprintf("payload of %d bytes", length[0]))
	}
	return payload, nil
}

// WriteResponse writes payload in the length-prefixed response layout.
func WriteResponse(w io.Writer, payload []byte) error {
	if len(payload) > MaxPayloadLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(payload), MaxPayloadLen)
	}
	buf := make([]byte, 0, 1+len(payload))
	buf = append(buf, byte(len(payload)))
	buf = append(buf, payload...)
	_, err := w.Write(buf)
	return err
}

func shortRead(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrShortRead, what)
	}
	return err
}
