package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/rqstctl/internal/testutil/testlog"
)

func TestDefaultRegistryBuildsKnownCommands(t *testing.T) {
	testlog.Start(t)
	r := DefaultRegistry()
	cases := []struct {
		id   string
		args []string
		want []byte
	}{
		{"perf-state", []string{"0x07"}, []byte{0x03, 0x03, 0x00, 0x01, 0x00, 0x04, 0x07, 0x00, 0x00, 0x00}},
		{"perf-state", []string{"7"}, []byte{0x03, 0x03, 0x00, 0x01, 0x00, 0x04, 0x07, 0x00, 0x00, 0x00}},
		{"detach-lock", nil, []byte{0x11, 0x06, 0x00, 0x01, 0x00, 0x00}},
		{"detach-ack", nil, []byte{0x11, 0x09, 0x00, 0x01, 0x00, 0x00}},
		{"bat-sta", nil, []byte{0x02, 0x01, 0x01, 0x01, 0x01, 0x00}},
		{"bat-bix", []string{"2"}, []byte{0x02, 0x02, 0x02, 0x01, 0x01, 0x00}},
		{"bat-btp", []string{"1", "0x10"}, []byte{0x02, 0x04, 0x01, 0x01, 0x00, 0x04, 0x10, 0x00, 0x00, 0x00}},
		{"raw", []string{"15", "03", "03", "02", "00", "07", "03"}, []byte{0x15, 0x03, 0x03, 0x02, 0x00, 0x02, 0x07, 0x03}},
		{"raw", []string{"0x11", "0x06", "0x00", "0x01", "0x00"}, []byte{0x11, 0x06, 0x00, 0x01, 0x00, 0x00}},
	}
	for _, tc := range cases {
		spec, ok := r.Resolve(tc.id)
		if !ok {
			t.Fatalf("missing command %q", tc.id)
		}
		cmd, err := spec.Build(tc.args)
		if err != nil {
			t.Fatalf("%s %v: build: %v", tc.id, tc.args, err)
		}
		got := mustEncode(t, cmd)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%s %v: got % x want % x", tc.id, tc.args, got, tc.want)
		}
	}
}

func TestDefaultRegistryRejectsBadArguments(t *testing.T) {
	testlog.Start(t)
	r := DefaultRegistry()
	cases := []struct {
		id   string
		args []string
	}{
		{"perf-state", nil},
		{"perf-state", []string{"256"}},
		{"detach-lock", []string{"1"}},
		{"bat-btp", []string{"1"}},
		{"bat-sta", []string{"1", "2"}},
		{"hid-meta", []string{"0", "0", "118", "maybe"}},
		{"raw", []string{"11", "06"}},
	}
	for _, tc := range cases {
		spec, _ := r.Resolve(tc.id)
		if _, err := spec.Build(tc.args); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s %v: expected ErrInvalidArgument, got %v", tc.id, tc.args, err)
		}
	}
}

func TestRegistryRegisterValidation(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	build := func([]string) (Command, error) { return DetachLock(), nil }

	if err := r.Register(Spec{ID: "x", Description: "x"}); !errors.Is(err, ErrCommandNil) {
		t.Fatalf("expected ErrCommandNil, got %v", err)
	}
	if err := r.Register(Spec{ID: "Bad_ID", Description: "x", Build: build}); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
	if err := r.Register(Spec{ID: "lock", Build: build}); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec for missing description, got %v", err)
	}
	if err := r.Register(Spec{ID: "lock", Description: "lock", Build: build}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(Spec{ID: "lock", Description: "lock", Build: build}); !errors.Is(err, ErrCommandExists) {
		t.Fatalf("expected ErrCommandExists, got %v", err)
	}
}

func TestRegistryListSorted(t *testing.T) {
	testlog.Start(t)
	list := DefaultRegistry().List()
	if len(list) == 0 {
		t.Fatalf("expected builtin commands")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("list not sorted at %d: %q >= %q", i, list[i-1].ID, list[i].ID)
		}
	}
}
