package device

import (
	"errors"
	"io"

	"github.com/danmuck/rqstctl/internal/protocol/frame"
)

// Exchange performs one request/response round trip on a freshly opened
// channel: write request, seek to offset 0, read the length-prefixed
// response. The channel is closed on every path. A close failure is only
// reported when the exchange itself succeeded.
func Exchange(open OpenFunc, path string, request []byte) (resp []byte, err error) {
	if open == nil {
		open = OpenNode
	}
	ch, err := open(path)
	if err != nil {
		return nil, &ChannelError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cerr := ch.Close(); cerr != nil && err == nil {
			resp = nil
			err = &ChannelError{Op: "close", Path: path, Err: cerr}
		}
	}()

	n, err := ch.Write(request)
	if err != nil {
		return nil, &ChannelError{Op: "write", Path: path, Err: err}
	}
	if n != len(request) {
		return nil, &ChannelError{Op: "write", Path: path, Err: io.ErrShortWrite}
	}

	if _, err := ch.Seek(0, io.SeekStart); err != nil {
		return nil, &ChannelError{Op: "seek", Path: path, Err: err}
	}

	payload, err := frame.ReadResponse(ch)
	if err != nil {
		if errors.Is(err, frame.ErrShortRead) {
			return nil, err
		}
		return nil, &ChannelError{Op: "read", Path: path, Err: err}
	}
	return payload, nil
}
