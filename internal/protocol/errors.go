package protocol

import "errors"

var (
	ErrResponseLength  = errors.New("protocol: unexpected response length")
	ErrInvalidHex      = errors.New("protocol: invalid hex byte")
	ErrCommandExists   = errors.New("protocol: command already registered")
	ErrCommandNil      = errors.New("protocol: command spec is nil")
	ErrInvalidSpec     = errors.New("protocol: invalid command spec")
	ErrInvalidArgument = errors.New("protocol: invalid command argument")
	ErrFixedBody       = errors.New("protocol: payload set on fixed-body command")
)
