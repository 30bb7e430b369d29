// Package protocol owns the embedded controller request catalogue.
//
// Ownership boundary:
// - command values and their named constructors
// - fixed-layout response parsers
// - hex rendering and parsing for operator tooling
//
// Wire framing (header, CDL, length-prefixed responses) lives in the frame
// subpackage.
package protocol
