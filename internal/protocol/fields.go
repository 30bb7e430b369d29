package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Uint32Payload encodes v as a little-endian u32 payload.
func Uint32Payload(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// ParseUint32 decodes a response that holds exactly one little-endian u32.
func ParseUint32(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("%w: got %d bytes, expected 4", ErrResponseLength, len(data))
	}
	return binary.LittleEndian.Uint32(data), nil
}

func readUint32s(data []byte, dst ...*uint32) []byte {
	for _, p := range dst {
		*p = binary.LittleEndian.Uint32(data[:4])
		data = data[4:]
	}
	return data
}

// cstring returns the NUL-terminated prefix of b.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
