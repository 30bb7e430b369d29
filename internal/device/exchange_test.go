package device_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/rqstctl/internal/device"
	"github.com/danmuck/rqstctl/internal/protocol/frame"
	"github.com/danmuck/rqstctl/internal/testutil/fakedev"
	"github.com/danmuck/rqstctl/internal/testutil/testlog"
)

var detachLock = []byte{0x11, 0x06, 0x00, 0x01, 0x00, 0x00}

func TestExchangeReturnsPayloadAndCloses(t *testing.T) {
	testlog.Start(t)
	node := fakedev.New(fakedev.Static([]byte{0xaa, 0xbb}))

	resp, err := device.Exchange(node.Open, "fake", detachLock)
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if !bytes.Equal(resp, []byte{0xaa, 0xbb}) {
		t.Fatalf("got % x", resp)
	}
	reqs := node.Requests()
	if len(reqs) != 1 || !bytes.Equal(reqs[0], detachLock) {
		t.Fatalf("unexpected requests: %x", reqs)
	}
	if node.Opened() != 1 || !node.Balanced() {
		t.Fatalf("expected one balanced open/close")
	}
}

func TestExchangeShortResponse(t *testing.T) {
	testlog.Start(t)
	node := fakedev.NewRaw([]byte{0x02, 0xaa})

	resp, err := device.Exchange(node.Open, "fake", detachLock)
	if !errors.Is(err, frame.ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	if errors.Is(err, device.ErrChannel) {
		t.Fatalf("short read must not be reported as a channel error")
	}
	if resp != nil {
		t.Fatalf("expected no payload, got % x", resp)
	}
	if !node.Balanced() {
		t.Fatalf("channel not closed after decode failure")
	}
}

func TestExchangeEmptyResponse(t *testing.T) {
	testlog.Start(t)
	node := fakedev.NewRaw(nil)
	if _, err := device.Exchange(node.Open, "fake", detachLock); !errors.Is(err, frame.ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	if !node.Balanced() {
		t.Fatalf("channel not closed")
	}
}

func TestExchangeOpenFailure(t *testing.T) {
	testlog.Start(t)
	node := fakedev.New(fakedev.Static(nil))
	node.OpenErr = fs.ErrPermission

	_, err := device.Exchange(node.Open, "/sys/rqst", detachLock)
	var chErr *device.ChannelError
	if !errors.As(err, &chErr) || chErr.Op != "open" || chErr.Path != "/sys/rqst" {
		t.Fatalf("expected open ChannelError, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) || !errors.Is(err, device.ErrChannel) {
		t.Fatalf("expected permission channel error, got %v", err)
	}
}

func TestExchangeClosesOnWriteAndSeekFailure(t *testing.T) {
	testlog.Start(t)
	boom := errors.New("boom")

	writeFail := fakedev.New(fakedev.Static(nil))
	writeFail.WriteErr = boom
	_, err := device.Exchange(writeFail.Open, "fake", detachLock)
	var chErr *device.ChannelError
	if !errors.As(err, &chErr) || chErr.Op != "write" || !errors.Is(err, boom) {
		t.Fatalf("expected write ChannelError, got %v", err)
	}
	if !writeFail.Balanced() {
		t.Fatalf("channel not closed after write failure")
	}

	seekFail := fakedev.New(fakedev.Static(nil))
	seekFail.SeekErr = boom
	_, err = device.Exchange(seekFail.Open, "fake", detachLock)
	if !errors.As(err, &chErr) || chErr.Op != "seek" {
		t.Fatalf("expected seek ChannelError, got %v", err)
	}
	if !seekFail.Balanced() {
		t.Fatalf("channel not closed after seek failure")
	}
}

func TestExchangeCloseFailureSurfacesOnlyOnSuccess(t *testing.T) {
	testlog.Start(t)
	boom := errors.New("close boom")

	node := fakedev.New(fakedev.Static([]byte{0x01}))
	node.CloseErr = boom
	resp, err := device.Exchange(node.Open, "fake", detachLock)
	var chErr *device.ChannelError
	if !errors.As(err, &chErr) || chErr.Op != "close" || !errors.Is(err, boom) {
		t.Fatalf("expected close ChannelError, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected no payload on close failure")
	}

	short := fakedev.NewRaw([]byte{0x05})
	short.CloseErr = boom
	_, err = device.Exchange(short.Open, "fake", detachLock)
	if !errors.Is(err, frame.ErrShortRead) {
		t.Fatalf("decode error must win over close error, got %v", err)
	}
}

type shortWriter struct {
	io.ReadSeeker
}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }
func (shortWriter) Close() error                { return nil }

func TestExchangeShortWrite(t *testing.T) {
	testlog.Start(t)
	open := func(string) (device.Channel, error) {
		return shortWriter{bytes.NewReader([]byte{0x00})}, nil
	}
	_, err := device.Exchange(open, "fake", detachLock)
	if !errors.Is(err, io.ErrShortWrite) || !errors.Is(err, device.ErrChannel) {
		t.Fatalf("expected short write channel error, got %v", err)
	}
}

func TestExchangeOnRegularFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "rqst")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("create node: %v", err)
	}
	// A plain file echoes the request back; byte 0 (0x11) is read as the
	// length and the file is too short to satisfy it.
	_, err := device.Exchange(device.OpenNode, path, detachLock)
	if !errors.Is(err, frame.ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
}

func TestExchangeMissingNode(t *testing.T) {
	testlog.Start(t)
	_, err := device.Exchange(nil, filepath.Join(t.TempDir(), "absent"), detachLock)
	if !errors.Is(err, fs.ErrNotExist) || !errors.Is(err, device.ErrChannel) {
		t.Fatalf("expected not-exist channel error, got %v", err)
	}
}
