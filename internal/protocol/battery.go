package protocol

import "fmt"

// Battery command ids (TypeBattery).
const (
	CmdBatterySTA  uint8 = 0x01
	CmdBatteryBIX  uint8 = 0x02
	CmdBatteryBST  uint8 = 0x03
	CmdBatteryBTP  uint8 = 0x04
	CmdBatteryPMAX uint8 = 0x0b
	CmdBatteryPSOC uint8 = 0x0c
	CmdBatteryPSRC uint8 = 0x0d
	CmdBatteryCHGI uint8 = 0x0e
	CmdBatteryARTG uint8 = 0x0f
)

const (
	BSTResponseSize = 16
	BIXResponseSize = 1 + 15*4 + 21 + 11 + 5 + 21
)

// Battery state bits reported in BST.State.
const (
	BatteryDischarging uint32 = 0x1
	BatteryCharging    uint32 = 0x2
	BatteryCritical    uint32 = 0x4
)

// BatteryQuery builds a read-only battery request for the battery at iid.
// Queries set SNC to request a response and carry no payload.
func BatteryQuery(cid, iid uint8) Command {
	return Command{
		Name:       batteryName(cid),
		TypeCode:   TypeBattery,
		CommandID:  cid,
		InstanceID: iid,
		Priority:   PriorityNormal,
		SNC:        0x01,
	}
}

// BatterySetTripPoint builds the _BTP trip point request.
func BatterySetTripPoint(iid uint8, tripPoint uint32) Command {
	return batterySet(CmdBatteryBTP, iid, tripPoint)
}

// BatterySetChargeInput builds the CHGI request.
func BatterySetChargeInput(iid uint8, value uint32) Command {
	return batterySet(CmdBatteryCHGI, iid, value)
}

func batterySet(cid, iid uint8, v uint32) Command {
	return Command{
		Name:       batteryName(cid),
		TypeCode:   TypeBattery,
		CommandID:  cid,
		InstanceID: iid,
		Priority:   PriorityNormal,
		SNC:        0x00,
		Payload:    Uint32Payload(v),
	}
}

func batteryName(cid uint8) string {
	switch cid {
	case CmdBatterySTA:
		return "bat-sta"
	case CmdBatteryBIX:
		return "bat-bix"
	case CmdBatteryBST:
		return "bat-bst"
	case CmdBatteryBTP:
		return "bat-btp"
	case CmdBatteryPMAX:
		return "bat-pmax"
	case CmdBatteryPSOC:
		return "bat-psoc"
	case CmdBatteryPSRC:
		return "bat-psrc"
	case CmdBatteryCHGI:
		return "bat-chgi"
	case CmdBatteryARTG:
		return "bat-artg"
	default:
		return fmt.Sprintf("bat-0x%02x", cid)
	}
}

// BatteryStatus is the dynamic battery information (ACPI _BST layout).
type BatteryStatus struct {
	State          uint32
	PresentRate    uint32
	RemainingCap   uint32
	PresentVoltage uint32
}

// Charging reports whether the charging bit is set.
func (s BatteryStatus) Charging() bool { return s.State&BatteryCharging != 0 }

// Discharging reports whether the discharging bit is set.
func (s BatteryStatus) Discharging() bool { return s.State&BatteryDischarging != 0 }

// Critical reports whether the critical bit is set.
func (s BatteryStatus) Critical() bool { return s.State&BatteryCritical != 0 }

// ParseBST decodes a BST response.
func ParseBST(data []byte) (BatteryStatus, error) {
	if len(data) != BSTResponseSize {
		return BatteryStatus{}, fmt.Errorf("%w: got %d bytes, expected %d", ErrResponseLength, len(data), BSTResponseSize)
	}
	var s BatteryStatus
	readUint32s(data, &s.State, &s.PresentRate, &s.RemainingCap, &s.PresentVoltage)
	return s, nil
}

// BatteryInfo is the static battery information (ACPI _BIX layout).
type BatteryInfo struct {
	Revision            uint8
	PowerUnit           uint32
	DesignCap           uint32
	LastFullChargeCap   uint32
	Technology          uint32
	DesignVoltage       uint32
	DesignCapWarn       uint32
	DesignCapLow        uint32
	CycleCount          uint32
	MeasurementAccuracy uint32
	MaxSamplingTime     uint32
	MinSamplingTime     uint32
	MaxAvgInterval      uint32
	MinAvgInterval      uint32
	CapGranularity1     uint32
	CapGranularity2     uint32
	Model               string
	Serial              string
	Type                string
	OEMInfo             string
}

// ParseBIX decodes a BIX response.
func ParseBIX(data []byte) (BatteryInfo, error) {
	if len(data) != BIXResponseSize {
		return BatteryInfo{}, fmt.Errorf("%w: got %d bytes, expected %d", ErrResponseLength, len(data), BIXResponseSize)
	}
	var info BatteryInfo
	info.Revision = data[0]
	rest := readUint32s(data[1:],
		&info.PowerUnit,
		&info.DesignCap,
		&info.LastFullChargeCap,
		&info.Technology,
		&info.DesignVoltage,
		&info.DesignCapWarn,
		&info.DesignCapLow,
		&info.CycleCount,
		&info.MeasurementAccuracy,
		&info.MaxSamplingTime,
		&info.MinSamplingTime,
		&info.MaxAvgInterval,
		&info.MinAvgInterval,
		&info.CapGranularity1,
		&info.CapGranularity2,
	)
	info.Model = cstring(rest[0:21])
	info.Serial = cstring(rest[21:32])
	info.Type = cstring(rest[32:37])
	info.OEMInfo = cstring(rest[37:58])
	return info, nil
}
