package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestFormatHex(t *testing.T) {
	if got := FormatHex([]byte{0xaa, 0x0b, 0x00}); got != "aa 0b 00" {
		t.Fatalf("got %q", got)
	}
	if got := FormatHex(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestParseHexBytes(t *testing.T) {
	got, err := ParseHexBytes("0x15 03", "3", "0X02")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(got, []byte{0x15, 0x03, 0x03, 0x02}) {
		t.Fatalf("got % x", got)
	}
}

func TestParseHexBytesRejectsBadTokens(t *testing.T) {
	for _, tok := range []string{"0x", "123", "zz", "0x1g"} {
		if _, err := ParseHexBytes(tok); !errors.Is(err, ErrInvalidHex) {
			t.Fatalf("%q: expected ErrInvalidHex, got %v", tok, err)
		}
	}
}

func TestHIDMetaRequestEncoding(t *testing.T) {
	c := HIDMetaRequest(HIDMeta{ID: 1, Offset: 0x76, Limit: 0x76})
	got, err := c.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x15, 0x04, 0x03, 0x02, 0x01, 0x0a, 0x01, 0x76, 0x00, 0x00, 0x00, 0x76, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestParseHIDMeta(t *testing.T) {
	resp := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01, 0xde, 0xad}
	meta, rest, err := ParseHIDMeta(resp)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.ID != 1 || meta.Offset != 0 || meta.Limit != 2 || !meta.End {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if !bytes.Equal(rest, []byte{0xde, 0xad}) {
		t.Fatalf("unexpected rest: % x", rest)
	}
	if _, _, err := ParseHIDMeta(resp[:4]); !errors.Is(err, ErrResponseLength) {
		t.Fatalf("expected ErrResponseLength, got %v", err)
	}
}

func TestHIDReportSNC(t *testing.T) {
	if c := HIDReport(0x02, CmdHIDGetReport, []byte{0x05}); c.SNC != 0x01 {
		t.Fatalf("get report should request a response")
	}
	if c := HIDReport(0x02, CmdHIDSetReport, []byte{0x05}); c.SNC != 0x00 {
		t.Fatalf("set report should not request a response")
	}
}
