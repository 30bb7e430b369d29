package protocol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Builder turns positional operator arguments into a command.
type Builder func(args []string) (Command, error)

// Spec describes one named command available to operator tooling.
type Spec struct {
	ID          string
	Usage       string
	Description string
	Build       Builder
}

// Registry stores command specs by stable identifier.
type Registry struct {
	items map[string]Spec
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Spec)}
}

// DefaultRegistry returns a registry holding every known command.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, spec := range builtinSpecs() {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a spec to the registry.
func (r *Registry) Register(spec Spec) error {
	if spec.Build == nil {
		return ErrCommandNil
	}
	id := strings.TrimSpace(spec.ID)
	if !isValidID(id) {
		return fmt.Errorf("%w: invalid id format %q", ErrInvalidSpec, spec.ID)
	}
	if strings.TrimSpace(spec.Description) == "" {
		return fmt.Errorf("%w: description is required for %q", ErrInvalidSpec, id)
	}
	if _, ok := r.items[id]; ok {
		return fmt.Errorf("%w: %s", ErrCommandExists, id)
	}
	spec.ID = id
	r.items[id] = spec
	return nil
}

// Resolve returns a spec by id.
func (r *Registry) Resolve(id string) (Spec, bool) {
	spec, ok := r.items[id]
	return spec, ok
}

// List returns specs ordered by id.
func (r *Registry) List() []Spec {
	list := make([]Spec, 0, len(r.items))
	for _, spec := range r.items {
		list = append(list, spec)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

func builtinSpecs() []Spec {
	specs := []Spec{
		{
			ID:          "perf-state",
			Usage:       "perf-state <state>",
			Description: "change the performance state",
			Build: func(args []string) (Command, error) {
				if err := wantArgs(args, 1); err != nil {
					return Command{}, err
				}
				state, err := parseUint8(args[0])
				if err != nil {
					return Command{}, err
				}
				return PerformanceState(state), nil
			},
		},
		noArgSpec("detach-lock", "lock the detach latch", DetachLock),
		noArgSpec("detach-unlock", "unlock the detach latch", DetachUnlock),
		noArgSpec("detach-abort", "abort a pending detach", DetachAbort),
		noArgSpec("detach-ack", "acknowledge a detach request", DetachAck),
		batteryQuerySpec(CmdBatterySTA, "read battery status (_STA)"),
		batteryQuerySpec(CmdBatteryBIX, "read static battery information (_BIX)"),
		batteryQuerySpec(CmdBatteryBST, "read dynamic battery state (_BST)"),
		batteryQuerySpec(CmdBatteryPMAX, "read maximum platform power (PMAX)"),
		batteryQuerySpec(CmdBatteryPSOC, "read PSOC value"),
		batteryQuerySpec(CmdBatteryPSRC, "read platform power source (PSRC)"),
		batteryQuerySpec(CmdBatteryARTG, "read adapter rating (ARTG)"),
		batterySetSpec(CmdBatteryBTP, "set battery trip point (_BTP)", BatterySetTripPoint),
		batterySetSpec(CmdBatteryCHGI, "set charge input (CHGI)", BatterySetChargeInput),
		{
			ID:          "hid-meta",
			Usage:       "hid-meta <id> <offset> <limit> <end>",
			Description: "page through the HID descriptor",
			Build: func(args []string) (Command, error) {
				if err := wantArgs(args, 4); err != nil {
					return Command{}, err
				}
				id, err := parseUint8(args[0])
				if err != nil {
					return Command{}, err
				}
				offset, err := parseUint32(args[1])
				if err != nil {
					return Command{}, err
				}
				limit, err := parseUint32(args[2])
				if err != nil {
					return Command{}, err
				}
				end, err := strconv.ParseBool(args[3])
				if err != nil {
					return Command{}, fmt.Errorf("%w: end %q", ErrInvalidArgument, args[3])
				}
				return HIDMetaRequest(HIDMeta{ID: id, Offset: offset, Limit: limit, End: end}), nil
			},
		},
		{
			ID:          "raw",
			Usage:       "raw <tc> <cid> <iid> <pri> <snc> [payload...]",
			Description: "send an arbitrary request (all values hex)",
			Build: func(args []string) (Command, error) {
				if len(args) < 5 {
					return Command{}, fmt.Errorf("%w: expected at least 5 arguments, got %d", ErrInvalidArgument, len(args))
				}
				head, err := ParseHexBytes(args[:5]...)
				if err != nil {
					return Command{}, err
				}
				if len(head) != 5 {
					return Command{}, fmt.Errorf("%w: header needs exactly 5 bytes, got %d", ErrInvalidArgument, len(head))
				}
				payload, err := ParseHexBytes(args[5:]...)
				if err != nil {
					return Command{}, err
				}
				return Command{
					TypeCode:   head[0],
					CommandID:  head[1],
					InstanceID: head[2],
					Priority:   head[3],
					SNC:        head[4],
					Payload:    payload,
				}, nil
			},
		},
	}
	return specs
}

func noArgSpec(id, desc string, build func() Command) Spec {
	return Spec{
		ID:          id,
		Usage:       id,
		Description: desc,
		Build: func(args []string) (Command, error) {
			if err := wantArgs(args, 0); err != nil {
				return Command{}, err
			}
			return build(), nil
		},
	}
}

func batteryQuerySpec(cid uint8, desc string) Spec {
	id := batteryName(cid)
	return Spec{
		ID:          id,
		Usage:       id + " [iid]",
		Description: desc,
		Build: func(args []string) (Command, error) {
			if len(args) > 1 {
				return Command{}, fmt.Errorf("%w: expected at most 1 argument, got %d", ErrInvalidArgument, len(args))
			}
			iid := uint8(0x01)
			if len(args) == 1 {
				v, err := parseUint8(args[0])
				if err != nil {
					return Command{}, err
				}
				iid = v
			}
			return BatteryQuery(cid, iid), nil
		},
	}
}

func batterySetSpec(cid uint8, desc string, build func(uint8, uint32) Command) Spec {
	id := batteryName(cid)
	return Spec{
		ID:          id,
		Usage:       id + " <iid> <value>",
		Description: desc,
		Build: func(args []string) (Command, error) {
			if err := wantArgs(args, 2); err != nil {
				return Command{}, err
			}
			iid, err := parseUint8(args[0])
			if err != nil {
				return Command{}, err
			}
			v, err := parseUint32(args[1])
			if err != nil {
				return Command{}, err
			}
			return build(iid, v), nil
		},
	}
}

func wantArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %d arguments, got %d", ErrInvalidArgument, n, len(args))
	}
	return nil
}

func parseUint8(raw string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a byte value", ErrInvalidArgument, raw)
	}
	return uint8(v), nil
}

func parseUint32(raw string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a u32 value", ErrInvalidArgument, raw)
	}
	return uint32(v), nil
}

func isValidID(id string) bool {
	if id == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(id); i++ {
		c := id[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '-'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if (i == 0 || i == len(id)-1) && isSep {
			return false
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
