package protocol

import (
	"fmt"

	"github.com/danmuck/rqstctl/internal/protocol/frame"
)

// Type codes.
const (
	TypeBattery     uint8 = 0x02
	TypePerformance uint8 = 0x03
	TypeDetach      uint8 = 0x11
	TypeHID         uint8 = 0x15
)

// Priorities used by the controller.
const (
	PriorityNormal uint8 = 0x01
	PriorityHigh   uint8 = 0x02
)

// Command is one logical request. CDL is not part of the value; it is
// derived from Payload when the command is encoded. Fixed-body commands such
// as PerformanceState carry no Payload; Encode rejects one if it is set.
type Command struct {
	Name       string
	TypeCode   uint8
	CommandID  uint8
	InstanceID uint8
	Priority   uint8
	SNC        uint8
	Payload    []byte

	// body replaces the CDL byte and Payload verbatim when set.
	body []byte
}

// Frame returns the wire frame for c.
func (c Command) Frame() frame.Frame {
	h := frame.Header{
		TypeCode:   c.TypeCode,
		CommandID:  c.CommandID,
		InstanceID: c.InstanceID,
		Priority:   c.Priority,
		SNC:        c.SNC,
	}
	if c.body != nil {
		h.CDL = c.body[0]
		return frame.Frame{Header: h, Payload: append([]byte(nil), c.body[1:]...)}
	}
	h.CDL = uint8(len(c.Payload))
	return frame.Frame{Header: h, Payload: c.Payload}
}

// Encode returns the exact request bytes for c.
func (c Command) Encode() ([]byte, error) {
	if c.body != nil {
		if len(c.Payload) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrFixedBody, c.Name)
		}
		return c.encodeFixed(), nil
	}
	return frame.Marshal(c.Frame())
}

func (c Command) encodeFixed() []byte {
	buf := make([]byte, 0, frame.HeaderLen-1+len(c.body))
	buf = append(buf, c.TypeCode, c.CommandID, c.InstanceID, c.Priority, c.SNC)
	return append(buf, c.body...)
}

// String names the command and its header for logs.
func (c Command) String() string {
	name := c.Name
	if name == "" {
		name = "raw"
	}
	return fmt.Sprintf("%s(tc=0x%02x cid=0x%02x iid=0x%02x pri=0x%02x snc=0x%02x)",
		name, c.TypeCode, c.CommandID, c.InstanceID, c.Priority, c.SNC)
}
