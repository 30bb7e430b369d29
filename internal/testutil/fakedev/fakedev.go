// Package fakedev provides an in-memory rqst node for tests.
//
// A Node behaves like the sysfs attribute: a write delivers one request
// frame to the responder, and the response replaces the readable region from
// offset 0, so a seek to the start followed by reads yields
// [len][payload...].
package fakedev

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/danmuck/rqstctl/internal/device"
	"github.com/danmuck/rqstctl/internal/protocol/frame"
)

// Responder produces the response payload for one request frame.
type Responder func(req frame.Frame) ([]byte, error)

// Static always answers with payload.
func Static(payload []byte) Responder {
	return func(frame.Frame) ([]byte, error) { return payload, nil }
}

// Node is a fake device node. Each Open returns a fresh handle.
type Node struct {
	mu        sync.Mutex
	respond   Responder
	requests  [][]byte
	opened    int
	closed    int
	raw       []byte
	isRaw     bool
	OpenErr   error
	WriteErr  error
	SeekErr   error
	CloseErr  error
	ShortBody bool
}

// New creates a node answering with respond.
func New(respond Responder) *Node {
	return &Node{respond: respond}
}

// NewRaw creates a node whose readable region is exactly raw after any
// write, regardless of the request. Used to model truncated responses.
func NewRaw(raw []byte) *Node {
	return &Node{raw: append([]byte{}, raw...), isRaw: true}
}

// Open implements device.OpenFunc.
func (n *Node) Open(string) (device.Channel, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.OpenErr != nil {
		return nil, n.OpenErr
	}
	n.opened++
	return &handle{node: n}, nil
}

// Requests returns copies of every request written so far.
func (n *Node) Requests() [][]byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([][]byte, len(n.requests))
	for i, r := range n.requests {
		out[i] = append([]byte(nil), r...)
	}
	return out
}

// Balanced reports whether every opened handle was closed.
func (n *Node) Balanced() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.opened == n.closed
}

// Opened returns the number of handles acquired.
func (n *Node) Opened() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.opened
}

type handle struct {
	node   *Node
	region *bytes.Reader
	closed bool
}

func (h *handle) Write(p []byte) (int, error) {
	n := h.node
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.WriteErr != nil {
		return 0, n.WriteErr
	}
	n.requests = append(n.requests, append([]byte(nil), p...))

	if n.isRaw {
		h.region = bytes.NewReader(n.raw)
		return len(p), nil
	}

	req, err := frame.Unmarshal(p)
	if err != nil {
		return 0, err
	}
	payload, err := n.respond(req)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := frame.WriteResponse(&buf, payload); err != nil {
		return 0, err
	}
	region := buf.Bytes()
	if n.ShortBody && len(region) > 1 {
		region = region[:len(region)-1]
	}
	h.region = bytes.NewReader(region)
	return len(p), nil
}

func (h *handle) Seek(offset int64, whence int) (int64, error) {
	if h.node.SeekErr != nil {
		return 0, h.node.SeekErr
	}
	if h.region == nil {
		h.region = bytes.NewReader(nil)
	}
	return h.region.Seek(offset, whence)
}

func (h *handle) Read(p []byte) (int, error) {
	if h.region == nil {
		return 0, io.EOF
	}
	return h.region.Read(p)
}

func (h *handle) Close() error {
	n := h.node
	n.mu.Lock()
	defer n.mu.Unlock()
	if h.closed {
		return errors.New("fakedev: handle already closed")
	}
	h.closed = true
	n.closed++
	return n.CloseErr
}
