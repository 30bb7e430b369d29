package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatHex renders b as lowercase, space separated byte pairs ("aa bb").
func FormatHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}

// ParseHexBytes parses hex bytes from args. Each arg may hold several
// whitespace separated tokens; tokens may carry a 0x prefix.
func ParseHexBytes(args ...string) ([]byte, error) {
	out := make([]byte, 0, len(args))
	for _, arg := range args {
		for _, tok := range strings.Fields(arg) {
			v, err := parseHexByte(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func parseHexByte(tok string) (byte, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
	if digits == "" || len(digits) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, tok)
	}
	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, tok)
	}
	return byte(v), nil
}
