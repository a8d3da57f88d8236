package core

import "errors"

var (
	// ErrInvalidInput reports an empty, malformed or inconsistent waveform.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedChannelLayout reports a channel count a graph cannot be built for.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
	// ErrRenderFailure reports that an offline render could not complete.
	ErrRenderFailure = errors.New("render failure")
	// ErrInvalidParameter reports a stage or option parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
)
