package protocol

// Performance and detach command ids.
const (
	CmdPerformanceState uint8 = 0x03

	CmdDetachLock   uint8 = 0x06
	CmdDetachUnlock uint8 = 0x07
	CmdDetachAbort  uint8 = 0x08
	CmdDetachAck    uint8 = 0x09
)

// performanceStateBodyLen is the length sub-field the firmware expects at the
// start of the performance-state body.
const performanceStateBodyLen = 0x04

// PerformanceState builds the performance-state change request.
//
// The body is fixed-shape and carries its own length sub-field followed by
// the state and three reserved bytes:
//
//	[0x04][STATE][0x00][0x00][0x00]
//
// It is emitted verbatim after the five prefix bytes and does not go through
// the generic CDL computation.
func PerformanceState(state uint8) Command {
	return Command{
		Name:       "perf-state",
		TypeCode:   TypePerformance,
		CommandID:  CmdPerformanceState,
		InstanceID: 0x00,
		Priority:   PriorityNormal,
		SNC:        0x00,
		body:       performanceStatePayload(state),
	}
}

func performanceStatePayload(state uint8) []byte {
	return []byte{performanceStateBodyLen, state, 0x00, 0x00, 0x00}
}

// DetachLock builds the detach lock request.
func DetachLock() Command { return detach("detach-lock", CmdDetachLock) }

// DetachUnlock builds the detach unlock request.
func DetachUnlock() Command { return detach("detach-unlock", CmdDetachUnlock) }

// DetachAbort builds the detach abort request.
func DetachAbort() Command { return detach("detach-abort", CmdDetachAbort) }

// DetachAck builds the detach acknowledge request.
func DetachAck() Command { return detach("detach-ack", CmdDetachAck) }

func detach(name string, cid uint8) Command {
	return Command{
		Name:       name,
		TypeCode:   TypeDetach,
		CommandID:  cid,
		InstanceID: 0x00,
		Priority:   PriorityNormal,
		SNC:        0x00,
	}
}
