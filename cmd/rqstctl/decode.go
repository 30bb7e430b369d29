package main

import (
	"fmt"
	"io"

	"github.com/danmuck/rqstctl/internal/protocol"
)

// decodeResponse prints a field view of resp for commands with a known
// response layout. It reports false when cmd has none.
func decodeResponse(w io.Writer, cmd protocol.Command, resp []byte) (bool, error) {
	switch cmd.TypeCode {
	case protocol.TypeBattery:
		return decodeBattery(w, cmd.CommandID, resp)
	case protocol.TypeHID:
		if cmd.CommandID != protocol.CmdHIDMeta {
			return false, nil
		}
		meta, data, err := protocol.ParseHIDMeta(resp)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(w, "id=%d offset=%d limit=%d end=%t\n", meta.ID, meta.Offset, meta.Limit, meta.End)
		fmt.Fprintf(w, "data=%s\n", protocol.FormatHex(data))
		return true, nil
	default:
		return false, nil
	}
}

func decodeBattery(w io.Writer, cid uint8, resp []byte) (bool, error) {
	switch cid {
	case protocol.CmdBatterySTA, protocol.CmdBatteryPMAX, protocol.CmdBatteryPSOC,
		protocol.CmdBatteryPSRC, protocol.CmdBatteryARTG:
		v, err := protocol.ParseUint32(resp)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(w, "value=0x%08x (%d)\n", v, v)
	case protocol.CmdBatteryBST:
		s, err := protocol.ParseBST(resp)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(w, "state=0x%x charging=%t discharging=%t critical=%t\n",
			s.State, s.Charging(), s.Discharging(), s.Critical())
		fmt.Fprintf(w, "rate=%d remaining=%d voltage=%d\n", s.PresentRate, s.RemainingCap, s.PresentVoltage)
	case protocol.CmdBatteryBIX:
		info, err := protocol.ParseBIX(resp)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(w, "revision=%d unit=%d design=%d full=%d voltage=%d cycles=%d\n",
			info.Revision, info.PowerUnit, info.DesignCap, info.LastFullChargeCap,
			info.DesignVoltage, info.CycleCount)
		fmt.Fprintf(w, "model=%q serial=%q type=%q oem=%q\n", info.Model, info.Serial, info.Type, info.OEMInfo)
	default:
		return false, nil
	}
	return true, nil
}
