package device

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultPath is the rqst node exposed by the serial hub driver.
const DefaultPath = "/sys/bus/serial/devices/serial0-0/rqst"

// ErrChannel matches every *ChannelError.
var ErrChannel = errors.New("device: channel error")

// Channel is one opened handle on the device node. Requests and responses
// share the same offset based handle.
type Channel interface {
	io.ReadWriteSeeker
	io.Closer
}

// OpenFunc acquires a channel on path.
type OpenFunc func(path string) (Channel, error)

// OpenNode opens path for synchronous read/write.
func OpenNode(path string) (Channel, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ChannelError reports a failed channel operation.
type ChannelError struct {
	Op   string
	Path string
	Err  error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("device: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }

func (e *ChannelError) Is(target error) bool { return target == ErrChannel }
