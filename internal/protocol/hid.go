package protocol

import (
	"encoding/binary"
	"fmt"
)

// HID command ids (TypeHID).
const (
	CmdHIDKeyboardReport uint8 = 0x01
	CmdHIDGetReport      uint8 = 0x02
	CmdHIDSetReport      uint8 = 0x03
	CmdHIDMeta           uint8 = 0x04
)

const (
	hidMetaInstance = 0x03
	HIDMetaSize     = 1 + 4 + 4 + 1
)

// HIDMeta is the descriptor paging header sent with a meta request and
// echoed at the start of its response.
type HIDMeta struct {
	ID     uint8
	Offset uint32
	Limit  uint32
	End    bool
}

func (m HIDMeta) bytes() []byte {
	buf := make([]byte, HIDMetaSize)
	buf[0] = m.ID
	binary.LittleEndian.PutUint32(buf[1:5], m.Offset)
	binary.LittleEndian.PutUint32(buf[5:9], m.Limit)
	if m.End {
		buf[9] = 0x01
	}
	return buf
}

// HIDMetaRequest builds a descriptor meta request. ID 0 asks for the
// descriptor info block, ID 1 pages through the descriptor itself.
func HIDMetaRequest(meta HIDMeta) Command {
	return Command{
		Name:       "hid-meta",
		TypeCode:   TypeHID,
		CommandID:  CmdHIDMeta,
		InstanceID: hidMetaInstance,
		Priority:   PriorityHigh,
		SNC:        0x01,
		Payload:    meta.bytes(),
	}
}

// HIDReport builds a raw report request. Get-report requests expect a
// response and set SNC.
func HIDReport(iid, cid uint8, data []byte) Command {
	snc := uint8(0x00)
	if cid == CmdHIDGetReport {
		snc = 0x01
	}
	return Command{
		Name:       "hid-report",
		TypeCode:   TypeHID,
		CommandID:  cid,
		InstanceID: iid,
		Priority:   PriorityHigh,
		SNC:        snc,
		Payload:    append([]byte(nil), data...),
	}
}

// ParseHIDMeta decodes the meta header at the start of a meta response and
// returns the remaining data.
func ParseHIDMeta(data []byte) (HIDMeta, []byte, error) {
	if len(data) < HIDMetaSize {
		return HIDMeta{}, nil, fmt.Errorf("%w: got %d bytes, expected at least %d", ErrResponseLength, len(data), HIDMetaSize)
	}
	meta := HIDMeta{
		ID:     data[0],
		Offset: binary.LittleEndian.Uint32(data[1:5]),
		Limit:  binary.LittleEndian.Uint32(data[5:9]),
		End:    data[9] == 0x01,
	}
	return meta, data[HIDMetaSize:], nil
}
