package client

import "github.com/danmuck/rqstctl/internal/protocol"

// BatteryValue reads a single u32 battery value (STA, PMAX, PSOC, PSRC,
// ARTG) for the battery at iid.
func (c *Client) BatteryValue(cid, iid uint8) (uint32, error) {
	resp, err := c.Send(protocol.BatteryQuery(cid, iid))
	if err != nil {
		return 0, err
	}
	return protocol.ParseUint32(resp)
}

// BatteryState reads the dynamic battery state.
func (c *Client) BatteryState(iid uint8) (protocol.BatteryStatus, error) {
	resp, err := c.Send(protocol.BatteryQuery(protocol.CmdBatteryBST, iid))
	if err != nil {
		return protocol.BatteryStatus{}, err
	}
	return protocol.ParseBST(resp)
}

// BatteryInfo reads the static battery information.
func (c *Client) BatteryInfo(iid uint8) (protocol.BatteryInfo, error) {
	resp, err := c.Send(protocol.BatteryQuery(protocol.CmdBatteryBIX, iid))
	if err != nil {
		return protocol.BatteryInfo{}, err
	}
	return protocol.ParseBIX(resp)
}

// SetBatteryTripPoint sets the battery trip point.
func (c *Client) SetBatteryTripPoint(iid uint8, tripPoint uint32) ([]byte, error) {
	return c.Send(protocol.BatterySetTripPoint(iid, tripPoint))
}

// SetChargeInput sets the CHGI value.
func (c *Client) SetChargeInput(iid uint8, value uint32) ([]byte, error) {
	return c.Send(protocol.BatterySetChargeInput(iid, value))
}

// HIDMeta sends one descriptor meta request and splits the echoed header
// from the returned data.
func (c *Client) HIDMeta(meta protocol.HIDMeta) (protocol.HIDMeta, []byte, error) {
	resp, err := c.Send(protocol.HIDMetaRequest(meta))
	if err != nil {
		return protocol.HIDMeta{}, nil, err
	}
	return protocol.ParseHIDMeta(resp)
}
